package model

import (
	"time"
)

// AchievementDefinition 成就目录中的一条定义
// key 全局唯一且永不变更，客户端与台账都通过 key 引用
// swagger:model AchievementDefinition
type AchievementDefinition struct {
	BaseModel
	Key         string `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Title       string `gorm:"size:120;not null" json:"title"`
	Description string `gorm:"size:240;not null" json:"description"`
	Icon        string `gorm:"size:64" json:"icon,omitempty"`
	ShareText   string `gorm:"size:300" json:"shareText,omitempty"`
	IsActive    bool   `gorm:"default:true;not null" json:"isActive"`
}

func (AchievementDefinition) TableName() string {
	return "achievement_definitions"
}

// AchievementEvent 成就台账中的一行：某用户获得某成就
// (user_id, achievement_key) 唯一索引保证一个成就每人至多触发一次，
// 并发重复插入由索引裁决，第二个写入者静默失败
type AchievementEvent struct {
	BaseModel
	UserID         uint      `gorm:"index:idx_ach_events_user_key,unique;index:idx_ach_events_user_time;not null" json:"userId"`
	AchievementKey string    `gorm:"size:64;index:idx_ach_events_user_key,unique;not null" json:"achievementKey"`
	OccurredAt     time.Time `gorm:"index:idx_ach_events_user_time;default:CURRENT_TIMESTAMP(3);not null" json:"occurredAt"`
}

func (AchievementEvent) TableName() string {
	return "achievement_events"
}

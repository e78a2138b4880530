package model

import (
	"time"
)

// User 习惯教练的终端用户，由 Telegram 机器人代为注册
// swagger:model User
type User struct {
	BaseModel
	TgUserID    int64     `gorm:"uniqueIndex;not null" json:"tgUserId"`
	DisplayName string    `gorm:"size:120;not null" json:"displayName"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	LastSeen    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`

	Habits            []Habit            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CheckIns          []CheckIn          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AchievementEvents []AchievementEvent `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

package model

import (
	"time"
)

// CheckIn 用户某一天的打卡记录
// (user_id, day) 唯一，记录一旦写入不再修改
// swagger:model CheckIn
type CheckIn struct {
	BaseModel
	UserID         uint          `gorm:"index;index:idx_checkins_user_day,unique;not null" json:"userId"`
	Day            time.Time     `gorm:"type:date;index:idx_checkins_user_day,unique;not null" json:"day"`
	Slip           bool          `gorm:"default:false;not null" json:"slip"`
	HealthyMinutes int           `gorm:"default:0;not null" json:"healthyMinutes"`
	Items          []CheckInItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (CheckIn) TableName() string {
	return "checkins"
}

// CheckInItem 打卡中对单个习惯的完成标记
type CheckInItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckInID uint   `gorm:"index;not null" json:"-"`
	HabitKey  string `gorm:"size:64;not null" json:"habitKey"`
	Done      bool   `gorm:"default:true;not null" json:"done"`
}

func (CheckInItem) TableName() string {
	return "checkin_items"
}

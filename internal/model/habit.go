package model

// Habit 用户要戒除或坚持的单个习惯，例如 "no_social"
// key 在同一用户下唯一，打卡条目通过 key 引用习惯
type Habit struct {
	BaseModel
	UserID   uint   `gorm:"index;index:idx_habits_user_key,unique;not null" json:"userId"`
	Key      string `gorm:"size:64;index:idx_habits_user_key,unique;not null" json:"key"`
	Title    string `gorm:"size:120;not null" json:"title"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Habit) TableName() string {
	return "habits"
}

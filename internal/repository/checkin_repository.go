package repository

import (
	"habit_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type CheckinRepository struct {
	DB *gorm.DB
}

// NewCheckinRepository 创建新的打卡仓库实例
func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库副本，打卡写入与成就评估共用一个事务
func (r *CheckinRepository) WithTx(tx *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: tx}
}

// Create 创建打卡记录（连同习惯条目一起写入）
func (r *CheckinRepository) Create(checkin *model.CheckIn) error {
	return r.DB.Create(checkin).Error
}

// FindByUserAndDay 查询用户某天的打卡记录
func (r *CheckinRepository) FindByUserAndDay(userID uint, day time.Time) (*model.CheckIn, error) {
	var checkin model.CheckIn
	err := r.DB.Preload("Items").
		Where("user_id = ? AND day = ?", userID, day.Format("2006-01-02")).
		First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// ListByUser 返回用户的全部打卡历史，按日期升序
func (r *CheckinRepository) ListByUser(userID uint) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	err := r.DB.Where("user_id = ?", userID).Order("day ASC").Find(&checkins).Error
	return checkins, err
}

// ListRecentByUser 返回用户最近的 limit 条打卡，按日期降序
func (r *CheckinRepository) ListRecentByUser(userID uint, limit int) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	err := r.DB.Where("user_id = ?", userID).Order("day DESC").Limit(limit).Find(&checkins).Error
	return checkins, err
}

// CountByUser 获取用户的总打卡次数
func (r *CheckinRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CheckIn{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

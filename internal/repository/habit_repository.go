package repository

import (
	"habit_coach_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) FindByUserAndKey(userID uint, key string) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.Where("user_id = ? AND `key` = ?", userID, key).First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) Update(habit *model.Habit) error {
	return r.DB.Save(habit).Error
}

func (r *HabitRepository) ListActiveByUser(userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").Find(&habits).Error
	return habits, err
}

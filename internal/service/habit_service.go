package service

import (
	"errors"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"

	"gorm.io/gorm"
)

// HabitRequest 习惯的创建/更新载荷
type HabitRequest struct {
	Key   string `json:"key" binding:"required,min=1,max=64"`
	Title string `json:"title" binding:"required,min=1,max=120"`
}

type HabitService struct {
	HabitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{HabitRepo: habitRepo}
}

// UpsertHabits 按 (user, key) 批量插入或更新习惯，重复提交会重新激活
func (s *HabitService) UpsertHabits(userID uint, reqs []HabitRequest) ([]model.Habit, error) {
	out := make([]model.Habit, 0, len(reqs))

	for _, req := range reqs {
		habit, err := s.HabitRepo.FindByUserAndKey(userID, req.Key)
		if err == nil {
			habit.Title = req.Title
			habit.IsActive = true
			if err := s.HabitRepo.Update(habit); err != nil {
				return nil, err
			}
			out = append(out, *habit)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		created := &model.Habit{
			UserID:   userID,
			Key:      req.Key,
			Title:    req.Title,
			IsActive: true,
		}
		if err := s.HabitRepo.Create(created); err != nil {
			return nil, err
		}
		out = append(out, *created)
	}

	return out, nil
}

// ListHabits 返回用户当前启用的习惯
func (s *HabitService) ListHabits(userID uint) ([]model.Habit, error) {
	return s.HabitRepo.ListActiveByUser(userID)
}

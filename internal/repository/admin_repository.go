package repository

import (
	"habit_coach_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) Create(admin *model.Admin) error {
	return r.DB.Create(admin).Error
}

func (r *AdminRepository) FindByEmail(email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Admin{}).Count(&count).Error
	return count, err
}

func (r *AdminRepository) UpdateLastLogin(adminID uint) error {
	return r.DB.Model(&model.Admin{}).Where("id = ?", adminID).
		Update("last_login", time.Now()).Error
}

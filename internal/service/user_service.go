package service

import (
	"errors"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/util"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserCreateRequest 机器人侧的注册载荷
type UserCreateRequest struct {
	TgUserID    int64  `json:"tgUserId" binding:"required"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=120"`
}

// UserService 处理机器人用户的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

// CreateOrGetUser 按 tg_user_id 幂等注册：已存在则直接返回现有用户
func (s *UserService) CreateOrGetUser(req UserCreateRequest) (*model.User, error) {
	existing, err := s.UserRepo.FindByTgUserID(req.TgUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		TgUserID:    req.TgUserID,
		DisplayName: req.DisplayName,
		IsActive:    true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByTgUserID 按 Telegram 用户 ID 查询
func (s *UserService) GetByTgUserID(tgUserID int64) (*model.User, error) {
	user, err := s.UserRepo.FindByTgUserID(tgUserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// GetActiveUser 按内部 ID 查询，停用账户视同不存在
func (s *UserService) GetActiveUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// UploadAvatar 校验并保存用户头像，返回可访问的 URL
func (s *UserService) UploadAvatar(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.GetActiveUser(userID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := "avatars/" + uuid.New().String() + filepath.Ext(file.Filename)
	url, err := s.Storage.Upload(filename, src, file.Size, mimeType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(user.ID, url); err != nil {
		return "", err
	}
	return url, nil
}

// ListUsers 管理后台的分页用户列表
func (s *UserService) ListUsers(page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit)
}

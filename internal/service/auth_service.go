package service

import (
	"errors"
	"habit_coach_backend/internal/config"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/util"
	"habit_coach_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 管理后台的登录与首个账号播种
type AuthService struct {
	AdminRepo *repository.AdminRepository
	Cfg       *config.Config
}

func NewAuthService(adminRepo *repository.AdminRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		AdminRepo: adminRepo,
		Cfg:       cfg,
	}
}

// EnsureBootstrapAdmin 管理员表为空时用配置里的账号播种一次，幂等
func (s *AuthService) EnsureBootstrapAdmin() error {
	count, err := s.AdminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if s.Cfg.Admin.Email == "" || s.Cfg.Admin.Password == "" {
		logger.Log.Warn("No admin account configured, admin surface will be unreachable")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := s.Cfg.Admin.Name
	if name == "" {
		name = "admin"
	}

	return s.AdminRepo.Create(&model.Admin{
		Name:     name,
		Email:    s.Cfg.Admin.Email,
		Password: string(hashed),
	})
}

// Login 校验管理员凭据并签发 JWT
func (s *AuthService) Login(email, password string) (string, error) {
	admin, err := s.AdminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := s.AdminRepo.UpdateLastLogin(admin.ID); err != nil {
		return "", err
	}

	return util.GenerateJWT(admin, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

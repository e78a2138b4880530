package service

import (
	"errors"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/util"
	"habit_coach_backend/pkg/monitoring"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// CheckInItemRequest 单个习惯的完成标记
type CheckInItemRequest struct {
	HabitKey string `json:"habitKey" binding:"required,max=64"`
	Done     bool   `json:"done"`
}

// CheckInRequest 打卡提交载荷，day 格式 2006-01-02
type CheckInRequest struct {
	Day            string               `json:"day" binding:"required"`
	Slip           bool                 `json:"slip"`
	HealthyMinutes int                  `json:"healthyMinutes" binding:"min=0,max=1440"`
	Items          []CheckInItemRequest `json:"items"`
}

// CheckinService 负责打卡写入。打卡插入、成就评估和台账追加
// 共用一个数据库事务：要么全部提交，要么全部回滚
type CheckinService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	CheckinRepo  *repository.CheckinRepository
	Achievements *AchievementService
}

func NewCheckinService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	checkinRepo *repository.CheckinRepository,
	achievements *AchievementService,
) *CheckinService {
	return &CheckinService{
		DB:           db,
		UserRepo:     userRepo,
		CheckinRepo:  checkinRepo,
		Achievements: achievements,
	}
}

// CreateCheckIn 写入一条打卡并返回本次新解锁的成就 key。
// 同一用户同一天重复提交返回 ErrCheckinExists
func (s *CheckinService) CreateCheckIn(userID uint, req CheckInRequest) (*model.CheckIn, []string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, util.ErrUserDisabled
	}

	day, err := util.ParseDate(req.Day)
	if err != nil {
		return nil, nil, err
	}

	items := make([]model.CheckInItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.CheckInItem{
			HabitKey: item.HabitKey,
			Done:     item.Done,
		})
	}

	checkin := &model.CheckIn{
		UserID:         userID,
		Day:            day,
		Slip:           req.Slip,
		HealthyMinutes: req.HealthyMinutes,
		Items:          items,
	}

	var newly []string
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		checkinRepo := s.CheckinRepo.WithTx(tx)

		if _, err := checkinRepo.FindByUserAndDay(userID, day); err == nil {
			return util.ErrCheckinExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := checkinRepo.Create(checkin); err != nil {
			// 并发提交绕过预检时由 (user_id, day) 唯一索引兜底
			if isDuplicateEntry(err) {
				return util.ErrCheckinExists
			}
			return err
		}

		// 评估必须看到已落库的打卡，且与之同生共死
		keys, err := s.Achievements.EvaluateAndGrant(tx, userID, day)
		if err != nil {
			return err
		}
		newly = keys
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	monitoring.CheckinCounter.Inc()
	return checkin, newly, nil
}

// isDuplicateEntry 识别 MySQL 唯一索引冲突（错误码 1062）
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

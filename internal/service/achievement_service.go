package service

import (
	"errors"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/util"
	"habit_coach_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// AchievementService 成就评估与台账访问的编排层。
// 目录由构造方显式传入，评估结果只取决于（历史，台账，目录）三者
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	CheckinRepo     *repository.CheckinRepository
	Catalog         []CatalogEntry
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	checkinRepo *repository.CheckinRepository,
	catalog []CatalogEntry,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		CheckinRepo:     checkinRepo,
		Catalog:         catalog,
	}
}

// GrantedAchievement 台账事件与成就定义的合并视图
type GrantedAchievement struct {
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	ShareText   string    `json:"shareText,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EnsureCatalog 幂等播种成就目录，应用启动和每次评估前都会调用
func (s *AchievementService) EnsureCatalog() error {
	defs := make([]model.AchievementDefinition, 0, len(s.Catalog))
	for _, entry := range s.Catalog {
		defs = append(defs, entry.Definition)
	}
	return s.AchievementRepo.SeedDefinitions(defs)
}

// EvaluateAndGrant 在一次打卡提交后评估全部成就条件，向台账追加
// 本次新解锁的行，并返回真正新写入的 key 集合。必须在打卡已写入的
// 事务 tx 内调用；重复评估是静默空操作，并发重复授予由唯一索引裁决
func (s *AchievementService) EvaluateAndGrant(tx *gorm.DB, userID uint, checkinDay time.Time) ([]string, error) {
	achievementRepo := s.AchievementRepo.WithTx(tx)
	checkinRepo := s.CheckinRepo.WithTx(tx)

	if err := s.ensureCatalogWith(achievementRepo); err != nil {
		return nil, err
	}

	history, err := checkinRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	facts, err := BuildHistoryFacts(history, checkinDay)
	if err != nil {
		return nil, err
	}

	events, err := achievementRepo.ListEventsForUser(userID)
	if err != nil {
		return nil, err
	}
	granted := make(map[string]bool, len(events))
	for _, e := range events {
		granted[e.AchievementKey] = true
	}

	// 管理侧停用的定义不参与评估；目录缓存最长滞后 5 分钟
	defs, err := achievementRepo.ListDefinitions()
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(defs))
	for _, d := range defs {
		active[d.Key] = d.IsActive
	}

	var newly []string
	now := time.Now()
	for _, key := range Evaluate(s.Catalog, facts, granted) {
		if !active[key] {
			continue
		}
		inserted, err := achievementRepo.Grant(userID, key, now)
		if err != nil {
			return nil, err
		}
		// 并发竞争输掉的插入不算错误，也不计入本次新解锁
		if inserted {
			newly = append(newly, key)
			monitoring.AchievementCounter.WithLabelValues(key).Inc()
		}
	}

	return newly, nil
}

func (s *AchievementService) ensureCatalogWith(repo *repository.AchievementRepository) error {
	defs := make([]model.AchievementDefinition, 0, len(s.Catalog))
	for _, entry := range s.Catalog {
		defs = append(defs, entry.Definition)
	}
	return repo.SeedDefinitions(defs)
}

// ListAchievements 返回用户已解锁的成就（含展示字段），最新的在前
func (s *AchievementService) ListAchievements(userID uint) ([]GrantedAchievement, error) {
	events, err := s.AchievementRepo.ListEventsForUser(userID)
	if err != nil {
		return nil, err
	}

	defs, err := s.AchievementRepo.ListDefinitions()
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]model.AchievementDefinition, len(defs))
	for _, d := range defs {
		byKey[d.Key] = d
	}

	out := make([]GrantedAchievement, 0, len(events))
	for _, e := range events {
		def, ok := byKey[e.AchievementKey]
		if !ok {
			// 台账引用了不存在的定义，数据完整性故障
			return nil, util.ErrDataIntegrity
		}
		out = append(out, GrantedAchievement{
			Key:         def.Key,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			ShareText:   def.ShareText,
			OccurredAt:  e.OccurredAt,
		})
	}
	return out, nil
}

// ListDefinitions 管理后台查看完整目录
func (s *AchievementService) ListDefinitions() ([]model.AchievementDefinition, error) {
	return s.AchievementRepo.ListDefinitions()
}

// SetDefinitionActive 管理侧停用/启用成就定义
func (s *AchievementService) SetDefinitionActive(key string, active bool) error {
	err := s.AchievementRepo.SetDefinitionActive(key, active)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrDefinitionNotFound
	}
	return err
}

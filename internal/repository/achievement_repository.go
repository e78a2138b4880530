package repository

import (
	"context"
	"encoding/json"
	"habit_coach_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	definitionCacheKey = "achievements:definitions"
	definitionCacheTTL = 5 * time.Minute
)

// AchievementRepository 同时负责成就目录（achievement_definitions）
// 和成就台账（achievement_events）的读写
type AchievementRepository struct {
	DB  *gorm.DB
	RDB *redis.Client

	// 事务内读到的是未提交数据，不得回填共享缓存
	inTx bool
}

func NewAchievementRepository(db *gorm.DB, rdb *redis.Client) *AchievementRepository {
	return &AchievementRepository{DB: db, RDB: rdb}
}

// WithTx 返回绑定到事务的仓库副本，缓存客户端保持不变
func (r *AchievementRepository) WithTx(tx *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: tx, RDB: r.RDB, inTx: true}
}

// SeedDefinitions 幂等播种成就目录：按 key 不存在才插入，
// 已有行不会被覆盖或复制
func (r *AchievementRepository) SeedDefinitions(defs []model.AchievementDefinition) error {
	for i := range defs {
		err := r.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&defs[i]).Error
		if err != nil {
			return err
		}
	}
	r.invalidateDefinitionCache()
	return nil
}

// ListDefinitions 返回全部成就定义，按主键升序（即目录顺序）
// 目录是静态数据，走 Redis 缓存；统计快照按规约永不缓存
func (r *AchievementRepository) ListDefinitions() ([]model.AchievementDefinition, error) {
	ctx := context.Background()

	if r.RDB != nil {
		cached, err := r.RDB.Get(ctx, definitionCacheKey).Bytes()
		if err == nil {
			var defs []model.AchievementDefinition
			if json.Unmarshal(cached, &defs) == nil {
				return defs, nil
			}
		}
	}

	var defs []model.AchievementDefinition
	if err := r.DB.Order("id ASC").Find(&defs).Error; err != nil {
		return nil, err
	}

	if r.RDB != nil && !r.inTx {
		if data, err := json.Marshal(defs); err == nil {
			r.RDB.Set(ctx, definitionCacheKey, data, definitionCacheTTL)
		}
	}

	return defs, nil
}

func (r *AchievementRepository) FindDefinitionByKey(key string) (*model.AchievementDefinition, error) {
	var def model.AchievementDefinition
	err := r.DB.Where("`key` = ?", key).First(&def).Error
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// SetDefinitionActive 管理侧停用/启用某条成就定义
func (r *AchievementRepository) SetDefinitionActive(key string, active bool) error {
	res := r.DB.Model(&model.AchievementDefinition{}).
		Where("`key` = ?", key).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateDefinitionCache()
	return nil
}

func (r *AchievementRepository) invalidateDefinitionCache() {
	if r.RDB != nil {
		r.RDB.Del(context.Background(), definitionCacheKey)
	}
}

// HasGranted 查询台账中是否已有 (user, key) 行
func (r *AchievementRepository) HasGranted(userID uint, key string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.AchievementEvent{}).
		Where("user_id = ? AND achievement_key = ?", userID, key).
		Count(&count).Error
	return count > 0, err
}

// Grant 向台账追加一行，返回是否真正写入。
// 依赖 (user_id, achievement_key) 唯一索引裁决并发：
// 先写者胜出，后写者 RowsAffected 为 0，静默返回 false
func (r *AchievementRepository) Grant(userID uint, key string, occurredAt time.Time) (bool, error) {
	event := model.AchievementEvent{
		UserID:         userID,
		AchievementKey: key,
		OccurredAt:     occurredAt,
	}
	res := r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&event)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListEventsForUser 返回用户的全部成就事件，最新的在前
func (r *AchievementRepository) ListEventsForUser(userID uint) ([]model.AchievementEvent, error) {
	var events []model.AchievementEvent
	err := r.DB.Where("user_id = ?", userID).
		Order("occurred_at DESC").Find(&events).Error
	return events, err
}

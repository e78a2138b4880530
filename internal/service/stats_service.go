package service

import (
	"errors"
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/repository"
	"habit_coach_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

// 计分权重：每天打卡 10 分，每次失误扣 15 分，每 30 分钟健康活动加 1 分
const (
	scorePerCheckin     = 10
	scorePerSlip        = 15
	healthyMinutesChunk = 30
)

// StatsSnapshot 用户统计快照，纯粹由打卡历史推导，从不落库或缓存
// swagger:model StatsSnapshot
type StatsSnapshot struct {
	UserID              uint    `json:"userId"`
	Streak              int     `json:"streak"`
	AdherencePercent    float64 `json:"adherencePercent"`
	TotalCheckins       int     `json:"totalCheckins"`
	Slips               int     `json:"slips"`
	HealthyMinutesTotal int     `json:"healthyMinutesTotal"`
	Score               int     `json:"score"`
}

// TrendPoint 单次打卡对总分的增量贡献
type TrendPoint struct {
	Day   time.Time `json:"day"`
	Score int       `json:"score"`
}

// CalcStreak 计算连续打卡天数：从最近一次打卡日向前逐日回数，
// 遇到第一个缺口为止。锚点永远是最后一次记录的日期而不是今天——
// 停更十天的用户仍然显示停更前的连击长度，"连击是否仍然有效"由调用方自行判断
func CalcStreak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	set := make(map[time.Time]bool, len(days))
	var latest time.Time
	for _, d := range days {
		d = util.DateOnly(d)
		set[d] = true
		if d.After(latest) {
			latest = d
		}
	}

	streak := 0
	for d := latest; set[d]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// BuildSnapshot 从完整打卡历史推导统计快照。纯函数：相同输入必得相同输出。
// adherence_percent 保留两位小数，采用四舍五入、远离零方向（math.Round 语义）。
// 同一天出现两条记录说明存储层唯一约束被破坏，按数据完整性故障上报
func BuildSnapshot(records []model.CheckIn) (StatsSnapshot, error) {
	if len(records) == 0 {
		return StatsSnapshot{}, nil
	}

	days := make([]time.Time, 0, len(records))
	seen := make(map[time.Time]bool, len(records))
	slips := 0
	healthyTotal := 0

	for _, rec := range records {
		day := util.DateOnly(rec.Day)
		if seen[day] {
			return StatsSnapshot{}, util.ErrDataIntegrity
		}
		seen[day] = true
		days = append(days, day)

		if rec.Slip {
			slips++
		}
		healthyTotal += rec.HealthyMinutes
	}

	total := len(records)
	adherence := float64(total-slips) / float64(total) * 100.0
	score := total*scorePerCheckin - slips*scorePerSlip + healthyTotal/healthyMinutesChunk

	return StatsSnapshot{
		Streak:              CalcStreak(days),
		AdherencePercent:    roundTo2(adherence),
		TotalCheckins:       total,
		Slips:               slips,
		HealthyMinutesTotal: healthyTotal,
		Score:               score,
	}, nil
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StatsService 对外暴露按用户的统计推导，历史每次请求都全量重算，
// 用正确性换吞吐（预期数据量很小）
type StatsService struct {
	UserRepo    *repository.UserRepository
	CheckinRepo *repository.CheckinRepository
}

func NewStatsService(userRepo *repository.UserRepository, checkinRepo *repository.CheckinRepository) *StatsService {
	return &StatsService{
		UserRepo:    userRepo,
		CheckinRepo: checkinRepo,
	}
}

// ComputeStats 计算用户统计快照。没有任何历史不算错误，返回全零快照
func (s *StatsService) ComputeStats(userID uint) (*StatsSnapshot, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	history, err := s.CheckinRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	snapshot, err := BuildSnapshot(history)
	if err != nil {
		return nil, err
	}
	snapshot.UserID = userID
	return &snapshot, nil
}

// Trend 返回最近 days 次打卡的逐日得分增量，供客户端画走势
func (s *StatsService) Trend(userID uint, days int) ([]TrendPoint, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if days < 2 {
		days = 2
	} else if days > 90 {
		days = 90
	}

	recent, err := s.CheckinRepo.ListRecentByUser(userID, days)
	if err != nil {
		return nil, err
	}

	// 仓库按日期降序返回，走势按时间正序输出
	points := make([]TrendPoint, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		rec := recent[i]
		inc := scorePerCheckin + rec.HealthyMinutes/healthyMinutesChunk
		if rec.Slip {
			inc -= scorePerSlip
		}
		points = append(points, TrendPoint{Day: util.DateOnly(rec.Day), Score: inc})
	}
	return points, nil
}

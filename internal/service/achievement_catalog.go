package service

import (
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/util"
	"time"
)

// HistoryFacts 一次成就评估所需的全部历史事实，从打卡历史一次性推导，
// 之后每个解锁条件都是 facts 上的纯谓词
type HistoryFacts struct {
	TotalCheckins int
	Streak        int
	SubmittedDay  time.Time
	// 以提交日为终点的 7 个连续日历日是否全部有打卡、是否全部无失误
	Window7Present bool
	Window7Clean   bool
}

// CatalogEntry 成就目录条目：持久化定义加解锁谓词
type CatalogEntry struct {
	Definition model.AchievementDefinition
	Unlocked   func(f HistoryFacts) bool
}

// DefaultCatalog 固定的成就目录。key 是对外契约，永不改动；
// 目录作为显式数据传给评估器，避免共享全局状态
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Definition: model.AchievementDefinition{
				Key:         "first_checkin",
				Title:       "First check-in",
				Description: "Logged the very first daily check-in.",
				Icon:        "🏁",
				ShareText:   "I just logged my first check-in of the dopamine challenge 🏁",
				IsActive:    true,
			},
			Unlocked: func(f HistoryFacts) bool { return f.TotalCheckins == 1 },
		},
		{
			Definition: model.AchievementDefinition{
				Key:         "streak_3",
				Title:       "3 days in a row",
				Description: "Checked in on 3 consecutive days.",
				Icon:        "🔥",
				ShareText:   "3 days in a row on the dopamine challenge 🔥",
				IsActive:    true,
			},
			Unlocked: func(f HistoryFacts) bool { return f.Streak >= 3 },
		},
		{
			Definition: model.AchievementDefinition{
				Key:         "streak_7",
				Title:       "7 days in a row",
				Description: "Checked in on 7 consecutive days.",
				Icon:        "💪",
				ShareText:   "A full week of daily check-ins 💪",
				IsActive:    true,
			},
			Unlocked: func(f HistoryFacts) bool { return f.Streak >= 7 },
		},
		{
			Definition: model.AchievementDefinition{
				Key:         "no_slip_7",
				Title:       "A week without slips",
				Description: "7 consecutive days recorded, none with a slip.",
				Icon:        "🛡️",
				ShareText:   "One week without a single slip 🛡️",
				IsActive:    true,
			},
			Unlocked: func(f HistoryFacts) bool { return f.Window7Present && f.Window7Clean },
		},
	}
}

// BuildHistoryFacts 从完整打卡历史推导评估事实。
// submittedDay 是刚刚提交的打卡日，no_slip_7 的 7 天窗口以它为终点。
// 同一天出现两条记录按数据完整性故障上报
func BuildHistoryFacts(records []model.CheckIn, submittedDay time.Time) (HistoryFacts, error) {
	submittedDay = util.DateOnly(submittedDay)

	days := make([]time.Time, 0, len(records))
	slipByDay := make(map[time.Time]bool, len(records))
	for _, rec := range records {
		day := util.DateOnly(rec.Day)
		if _, dup := slipByDay[day]; dup {
			return HistoryFacts{}, util.ErrDataIntegrity
		}
		slipByDay[day] = rec.Slip
		days = append(days, day)
	}

	facts := HistoryFacts{
		TotalCheckins:  len(records),
		Streak:         CalcStreak(days),
		SubmittedDay:   submittedDay,
		Window7Present: true,
		Window7Clean:   true,
	}

	for i := 0; i < 7; i++ {
		day := submittedDay.AddDate(0, 0, -i)
		slip, present := slipByDay[day]
		if !present {
			facts.Window7Present = false
			break
		}
		if slip {
			facts.Window7Clean = false
		}
	}

	return facts, nil
}

// Evaluate 纯决策步骤：返回满足解锁条件且尚未入账的成就 key，
// 顺序与目录一致。granted 为已入账 key 集合
func Evaluate(catalog []CatalogEntry, facts HistoryFacts, granted map[string]bool) []string {
	var keys []string
	for _, entry := range catalog {
		if granted[entry.Definition.Key] {
			continue
		}
		if entry.Unlocked(facts) {
			keys = append(keys, entry.Definition.Key)
		}
	}
	return keys
}

package service

import (
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanWeek(t *testing.T) []model.CheckIn {
	t.Helper()
	records := make([]model.CheckIn, 0, 7)
	start := day(t, "2026-08-06")
	for i := 0; i < 7; i++ {
		records = append(records, model.CheckIn{Day: start.AddDate(0, 0, i)})
	}
	return records
}

func TestDefaultCatalogKeys(t *testing.T) {
	catalog := DefaultCatalog()

	keys := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		keys = append(keys, entry.Definition.Key)
		assert.True(t, entry.Definition.IsActive)
		assert.NotNil(t, entry.Unlocked)
	}
	assert.Equal(t, []string{"first_checkin", "streak_3", "streak_7", "no_slip_7"}, keys)
}

func TestBuildHistoryFactsCleanWeek(t *testing.T) {
	records := cleanWeek(t)

	facts, err := BuildHistoryFacts(records, day(t, "2026-08-12"))
	require.NoError(t, err)

	assert.Equal(t, 7, facts.TotalCheckins)
	assert.Equal(t, 7, facts.Streak)
	assert.True(t, facts.Window7Present)
	assert.True(t, facts.Window7Clean)
}

func TestBuildHistoryFactsSlipInWindow(t *testing.T) {
	records := cleanWeek(t)
	records[3].Slip = true

	facts, err := BuildHistoryFacts(records, day(t, "2026-08-12"))
	require.NoError(t, err)

	assert.True(t, facts.Window7Present)
	assert.False(t, facts.Window7Clean)
}

func TestBuildHistoryFactsMissingDayInWindow(t *testing.T) {
	records := cleanWeek(t)
	records = append(records[:3], records[4:]...) // 挖掉窗口中间一天

	facts, err := BuildHistoryFacts(records, day(t, "2026-08-12"))
	require.NoError(t, err)

	assert.False(t, facts.Window7Present)
}

func TestBuildHistoryFactsDuplicateDay(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-12")},
		{Day: day(t, "2026-08-12")},
	}

	_, err := BuildHistoryFacts(records, day(t, "2026-08-12"))
	assert.ErrorIs(t, err, util.ErrDataIntegrity)
}

func TestEvaluateFirstCheckin(t *testing.T) {
	catalog := DefaultCatalog()

	keys := Evaluate(catalog, HistoryFacts{TotalCheckins: 1, Streak: 1}, nil)
	assert.Equal(t, []string{"first_checkin"}, keys)

	// 第二次打卡后不再满足 first_checkin
	keys = Evaluate(catalog, HistoryFacts{TotalCheckins: 2, Streak: 2},
		map[string]bool{"first_checkin": true})
	assert.Empty(t, keys)
}

func TestEvaluateStreakThresholds(t *testing.T) {
	catalog := DefaultCatalog()
	granted := map[string]bool{"first_checkin": true}

	keys := Evaluate(catalog, HistoryFacts{TotalCheckins: 3, Streak: 3}, granted)
	assert.Equal(t, []string{"streak_3"}, keys)

	keys = Evaluate(catalog, HistoryFacts{TotalCheckins: 7, Streak: 7}, granted)
	assert.Equal(t, []string{"streak_3", "streak_7"}, keys)
}

func TestEvaluateNoSlipWeek(t *testing.T) {
	catalog := DefaultCatalog()
	granted := map[string]bool{"first_checkin": true, "streak_3": true, "streak_7": true}

	keys := Evaluate(catalog, HistoryFacts{
		TotalCheckins:  7,
		Streak:         7,
		Window7Present: true,
		Window7Clean:   true,
	}, granted)
	assert.Equal(t, []string{"no_slip_7"}, keys)

	// 窗口内有失误则不解锁
	keys = Evaluate(catalog, HistoryFacts{
		TotalCheckins:  7,
		Streak:         7,
		Window7Present: true,
		Window7Clean:   false,
	}, granted)
	assert.Empty(t, keys)
}

func TestEvaluateIdempotentOnGranted(t *testing.T) {
	catalog := DefaultCatalog()
	facts := HistoryFacts{
		TotalCheckins:  7,
		Streak:         7,
		SubmittedDay:   day(t, "2026-08-12"),
		Window7Present: true,
		Window7Clean:   true,
	}

	first := Evaluate(catalog, facts, map[string]bool{})

	granted := make(map[string]bool, len(first))
	for _, k := range first {
		granted[k] = true
	}
	second := Evaluate(catalog, facts, granted)
	assert.Empty(t, second)
}

func TestEvaluateCatalogOrder(t *testing.T) {
	catalog := DefaultCatalog()

	keys := Evaluate(catalog, HistoryFacts{
		TotalCheckins:  1,
		Streak:         7,
		Window7Present: true,
		Window7Clean:   true,
	}, nil)
	assert.Equal(t, []string{"first_checkin", "streak_3", "streak_7", "no_slip_7"}, keys)
}

package service

import (
	"habit_coach_backend/internal/model"
	"habit_coach_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := util.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestCalcStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, CalcStreak(nil))
	assert.Equal(t, 0, CalcStreak([]time.Time{}))
}

func TestCalcStreakConsecutive(t *testing.T) {
	days := []time.Time{
		day(t, "2026-08-10"),
		day(t, "2026-08-11"),
		day(t, "2026-08-12"),
	}
	assert.Equal(t, 3, CalcStreak(days))
}

func TestCalcStreakStopsAtGap(t *testing.T) {
	days := []time.Time{
		day(t, "2026-08-05"), // 缺口之前的孤立记录
		day(t, "2026-08-10"),
		day(t, "2026-08-11"),
		day(t, "2026-08-12"),
	}
	assert.Equal(t, 3, CalcStreak(days))
}

func TestCalcStreakAnchoredToLatestRecord(t *testing.T) {
	// 用户停更多天后，连击仍按最后一次记录日计算
	days := []time.Time{
		day(t, "2026-07-01"),
		day(t, "2026-07-02"),
		day(t, "2026-07-03"),
		day(t, "2026-07-04"),
	}
	assert.Equal(t, 4, CalcStreak(days))
}

func TestCalcStreakUnsortedInput(t *testing.T) {
	days := []time.Time{
		day(t, "2026-08-12"),
		day(t, "2026-08-10"),
		day(t, "2026-08-11"),
	}
	assert.Equal(t, 3, CalcStreak(days))
}

func TestBuildSnapshotEmptyHistory(t *testing.T) {
	snapshot, err := BuildSnapshot(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Streak)
	assert.Equal(t, 0.0, snapshot.AdherencePercent)
	assert.Equal(t, 0, snapshot.TotalCheckins)
	assert.Equal(t, 0, snapshot.Slips)
	assert.Equal(t, 0, snapshot.HealthyMinutesTotal)
	assert.Equal(t, 0, snapshot.Score)
}

func TestBuildSnapshotThreeCleanDays(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-10"), Slip: false, HealthyMinutes: 30},
		{Day: day(t, "2026-08-11"), Slip: false, HealthyMinutes: 30},
		{Day: day(t, "2026-08-12"), Slip: false, HealthyMinutes: 30},
	}

	snapshot, err := BuildSnapshot(records)
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.TotalCheckins)
	assert.Equal(t, 0, snapshot.Slips)
	assert.Equal(t, 100.0, snapshot.AdherencePercent)
	assert.Equal(t, 90, snapshot.HealthyMinutesTotal)
	assert.Equal(t, 33, snapshot.Score) // 3*10 + 90/30
	assert.Equal(t, 3, snapshot.Streak)
}

func TestBuildSnapshotSingleSlip(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-12"), Slip: true, HealthyMinutes: 0},
	}

	snapshot, err := BuildSnapshot(records)
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.TotalCheckins)
	assert.Equal(t, 1, snapshot.Slips)
	assert.Equal(t, 0.0, snapshot.AdherencePercent)
	assert.Equal(t, -5, snapshot.Score) // 10 - 15
	assert.Equal(t, 1, snapshot.Streak)
}

func TestBuildSnapshotAdherenceRounding(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-10"), Slip: false},
		{Day: day(t, "2026-08-11"), Slip: false},
		{Day: day(t, "2026-08-12"), Slip: true},
	}

	snapshot, err := BuildSnapshot(records)
	require.NoError(t, err)

	// 2/3 保留两位小数
	assert.Equal(t, 66.67, snapshot.AdherencePercent)
}

func TestBuildSnapshotHealthyMinutesInteger(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-12"), HealthyMinutes: 89},
	}

	snapshot, err := BuildSnapshot(records)
	require.NoError(t, err)

	// 89/30 取整数商
	assert.Equal(t, 12, snapshot.Score) // 10 + 2
}

func TestBuildSnapshotDuplicateDay(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-12")},
		{Day: day(t, "2026-08-12")},
	}

	_, err := BuildSnapshot(records)
	assert.ErrorIs(t, err, util.ErrDataIntegrity)
}

func TestBuildSnapshotPure(t *testing.T) {
	records := []model.CheckIn{
		{Day: day(t, "2026-08-10"), Slip: false, HealthyMinutes: 45},
		{Day: day(t, "2026-08-11"), Slip: true, HealthyMinutes: 15},
	}

	first, err := BuildSnapshot(records)
	require.NoError(t, err)
	second, err := BuildSnapshot(records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

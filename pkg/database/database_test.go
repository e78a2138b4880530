package database

import (
	"habit_coach_backend/internal/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:      "127.0.0.1",
		Port:      3306,
		User:      "habit_coach",
		Password:  "secret",
		DBName:    "habit_coach",
		Charset:   "utf8mb4",
		ParseTime: true,
	}

	dsn := BuildDSN(cfg)

	assert.Equal(t,
		"habit_coach:secret@tcp(127.0.0.1:3306)/habit_coach?charset=utf8mb4&parseTime=true&loc=UTC",
		dsn)
}

func TestBuildDSNPinsUTC(t *testing.T) {
	// 日期列按 UTC 零点读写，连接时区漂移会让同一天的
	// 写入和查询落在不同的 DATE 上
	dsn := BuildDSN(&config.DatabaseConfig{})

	assert.True(t, strings.HasSuffix(dsn, "loc=UTC"))
	assert.NotContains(t, dsn, "loc=Local")
}

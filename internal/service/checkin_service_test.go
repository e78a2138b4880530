package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2026-08-12' for key 'idx_checkins_user_day'"}

	assert.True(t, isDuplicateEntry(dup))
	assert.True(t, isDuplicateEntry(fmt.Errorf("create check-in: %w", dup)))

	// 其他 MySQL 错误和普通错误都不算
	assert.False(t, isDuplicateEntry(&mysql.MySQLError{Number: 1451}))
	assert.False(t, isDuplicateEntry(errors.New("connection reset")))
	assert.False(t, isDuplicateEntry(nil))
}

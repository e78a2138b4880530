package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAchievementRepositoryWithTxMarksTransactional(t *testing.T) {
	repo := NewAchievementRepository(nil, nil)
	assert.False(t, repo.inTx)

	// 事务副本不回填共享缓存，原仓库不受影响
	txRepo := repo.WithTx(nil)
	assert.True(t, txRepo.inTx)
	assert.False(t, repo.inTx)
}

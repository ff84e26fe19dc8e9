package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

func TestMergeCounts(t *testing.T) {
	stats := make(entity.GlobalStats)

	require.NoError(t, mergeCounts(stats, map[string]string{"1": "3", "2": "0"}, true))
	require.NoError(t, mergeCounts(stats, map[string]string{"1": "1", "7": "5"}, false))

	for id, s := range stats {
		stats[id] = finalize(s)
	}

	assert.Equal(t, entity.GlobalWordStat{Correct: 3, Incorrect: 1, TotalAttempts: 4, DifficultyScore: 0.25}, stats[1])
	assert.Equal(t, entity.GlobalWordStat{}, stats[2], "нулевые счетчики не дают DifficultyScore")
	assert.Equal(t, entity.GlobalWordStat{Incorrect: 5, TotalAttempts: 5, DifficultyScore: 1}, stats[7])
}

func TestMergeCounts_InvalidData(t *testing.T) {
	stats := make(entity.GlobalStats)

	assert.Error(t, mergeCounts(stats, map[string]string{"abc": "1"}, true))
	assert.Error(t, mergeCounts(stats, map[string]string{"1": "x"}, true))
}

func TestCacheRepo_Prefix(t *testing.T) {
	_, err := NewCacheRepo(nil)
	assert.Error(t, err)

	r := &CacheRepo{}
	prefixed := r.WithPrefix("vocab:")
	assert.Equal(t, "vocab:quiz:session:1", prefixed.key("quiz:session:1"))
	assert.Equal(t, "quiz:session:1", r.key("quiz:session:1"), "исходный репозиторий не меняется")
}

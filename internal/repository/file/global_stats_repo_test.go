package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

func newTestRepo(t *testing.T) (*GlobalStatsRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "global-stats.json")
	repo, err := NewGlobalStatsRepo(path)
	require.NoError(t, err)
	return repo, path
}

func TestNewGlobalStatsRepo_CreatesEmptyFile(t *testing.T) {
	_, path := newTestRepo(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestGlobalStatsRepo_Apply(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)

	updates, err := repo.Apply(ctx, []entity.AnswerSubmission{
		{WordID: 5, IsCorrect: false},
		{WordID: 5, IsCorrect: true},
		{WordID: 9, IsCorrect: false},
	})
	require.NoError(t, err)
	require.Len(t, updates, 3)

	assert.Equal(t, 5, updates[0].WordID)
	assert.Equal(t, 1, updates[0].Stat.TotalAttempts, "обновления возвращаются по порядку ответов")
	assert.Equal(t, 2, updates[1].Stat.TotalAttempts)
	assert.InDelta(t, 0.5, updates[1].Stat.DifficultyScore, 1e-9)
	assert.InDelta(t, 1.0, updates[2].Stat.DifficultyScore, 1e-9)

	// новый экземпляр читает то же состояние с диска
	reopened, err := NewGlobalStatsRepo(path)
	require.NoError(t, err)
	stats, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.GlobalWordStat{Correct: 1, Incorrect: 1, TotalAttempts: 2, DifficultyScore: 0.5}, stats[5])
	assert.Equal(t, 1, stats[9].Incorrect)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"totalAttempts": 2`)
	assert.Contains(t, string(data), `"difficultyScore": 0.5`)
}

func TestGlobalStatsRepo_CorruptedFile(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	stats, err := repo.Load(ctx)
	require.NoError(t, err, "поврежденный файл не должен ломать чтение")
	assert.Empty(t, stats)

	_, err = repo.Apply(ctx, []entity.AnswerSubmission{{WordID: 1, IsCorrect: true}})
	require.NoError(t, err)

	stats, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[1].Correct, "после записи файл снова валиден")
}

func TestGlobalStatsRepo_ConcurrentApply(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Apply(ctx, []entity.AnswerSubmission{{WordID: 1, IsCorrect: false}, {WordID: 2, IsCorrect: true}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats[1].Incorrect, "ни одно обновление не должно потеряться")
	assert.Equal(t, 10, stats[2].Correct)
}

func TestGlobalStatsRepo_EmptyBatch(t *testing.T) {
	repo, _ := newTestRepo(t)

	updates, err := repo.Apply(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

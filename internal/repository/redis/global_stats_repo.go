package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

const (
	globalCorrectKey   = "vocab:global:correct"
	globalIncorrectKey = "vocab:global:incorrect"
)

// GlobalStatsRepo хранит глобальную статистику в двух хешах Redis (word_id → счетчик)
type GlobalStatsRepo struct {
	client redis.UniversalClient
}

// NewGlobalStatsRepo создает репозиторий глобальной статистики
func NewGlobalStatsRepo(client redis.UniversalClient) *GlobalStatsRepo {
	return &GlobalStatsRepo{client: client}
}

// Load читает всю статистику
func (r *GlobalStatsRepo) Load(ctx context.Context) (entity.GlobalStats, error) {
	pipe := r.client.Pipeline()
	correctCmd := pipe.HGetAll(ctx, globalCorrectKey)
	incorrectCmd := pipe.HGetAll(ctx, globalIncorrectKey)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load global stats: %w", err)
	}

	stats := make(entity.GlobalStats)
	if err := mergeCounts(stats, correctCmd.Val(), true); err != nil {
		return nil, err
	}
	if err := mergeCounts(stats, incorrectCmd.Val(), false); err != nil {
		return nil, err
	}

	for id, s := range stats {
		stats[id] = finalize(s)
	}
	return stats, nil
}

// Apply увеличивает счетчики всего пакета одним pipeline
func (r *GlobalStatsRepo) Apply(ctx context.Context, batch []entity.AnswerSubmission) ([]entity.WordStatUpdate, error) {
	if len(batch) == 0 {
		return []entity.WordStatUpdate{}, nil
	}

	pipe := r.client.TxPipeline()
	correctCmds := make([]*redis.IntCmd, len(batch))
	incorrectCmds := make([]*redis.IntCmd, len(batch))
	for i, sub := range batch {
		field := strconv.Itoa(sub.WordID)
		var dc, di int64
		if sub.IsCorrect {
			dc = 1
		} else {
			di = 1
		}
		correctCmds[i] = pipe.HIncrBy(ctx, globalCorrectKey, field, dc)
		incorrectCmds[i] = pipe.HIncrBy(ctx, globalIncorrectKey, field, di)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to apply global stats batch: %w", err)
	}

	updates := make([]entity.WordStatUpdate, len(batch))
	for i, sub := range batch {
		updates[i] = entity.WordStatUpdate{
			WordID: sub.WordID,
			Stat: finalize(entity.GlobalWordStat{
				Correct:   int(correctCmds[i].Val()),
				Incorrect: int(incorrectCmds[i].Val()),
			}),
		}
	}
	return updates, nil
}

func mergeCounts(stats entity.GlobalStats, values map[string]string, correct bool) error {
	for field, raw := range values {
		id, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("invalid word id %q in global stats: %w", field, err)
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid counter %q for word %d: %w", raw, id, err)
		}
		s := stats[id]
		if correct {
			s.Correct = n
		} else {
			s.Incorrect = n
		}
		stats[id] = s
	}
	return nil
}

func finalize(s entity.GlobalWordStat) entity.GlobalWordStat {
	s.TotalAttempts = s.Correct + s.Incorrect
	if s.TotalAttempts > 0 {
		s.DifficultyScore = float64(s.Incorrect) / float64(s.TotalAttempts)
	}
	return s
}

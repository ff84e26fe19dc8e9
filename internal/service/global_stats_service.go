package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/domain/repository"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/internal/service/selector"
)

const (
	defaultTopMissedLimit = 20
	maxTopMissedLimit     = 100
	maxSubmissionBatch    = 5000
)

// StatsBroadcaster рассылает обновления глобальной статистики подписчикам
type StatsBroadcaster interface {
	BroadcastStatsUpdate(updates []entity.WordStatUpdate)
}

// TopMissedResult - ответ /api/stats/top-missed
type TopMissedResult struct {
	Words             []entity.TopMissedWord `json:"words"`
	TotalTrackedWords int                    `json:"totalTrackedWords"`
}

// GlobalStatsService работает с агрегированной статистикой всех пользователей
type GlobalStatsService struct {
	statsRepo   repository.GlobalStatsRepository
	catalog     *catalog.Catalog
	broadcaster StatsBroadcaster
}

// NewGlobalStatsService создает сервис глобальной статистики; broadcaster может быть nil
func NewGlobalStatsService(statsRepo repository.GlobalStatsRepository, c *catalog.Catalog, broadcaster StatsBroadcaster) *GlobalStatsService {
	return &GlobalStatsService{
		statsRepo:   statsRepo,
		catalog:     c,
		broadcaster: broadcaster,
	}
}

// GetGlobalStats возвращает статистику по всем словам
func (s *GlobalStatsService) GetGlobalStats(ctx context.Context) (entity.GlobalStats, error) {
	return s.statsRepo.Load(ctx)
}

// GlobalSignal возвращает глобальный сигнал сложности
func (s *GlobalStatsService) GlobalSignal(ctx context.Context) (selector.Signal, error) {
	stats, err := s.statsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return selector.FromGlobalStats(stats), nil
}

// Submit применяет пакет ответов. Неизвестный ID слова отклоняет весь пакет.
func (s *GlobalStatsService) Submit(ctx context.Context, batch []entity.AnswerSubmission) ([]entity.WordStatUpdate, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("%w: empty submission", apperrors.ErrValidation)
	}
	if len(batch) > maxSubmissionBatch {
		return nil, fmt.Errorf("%w: at most %d answers per submission", apperrors.ErrValidation, maxSubmissionBatch)
	}
	for _, sub := range batch {
		if !s.catalog.Contains(sub.WordID) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownWord, sub.WordID)
		}
	}

	updates, err := s.statsRepo.Apply(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to apply global stats: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastStatsUpdate(updates)
	}
	return updates, nil
}

// TopMissed возвращает самые трудные слова по доле ошибок.
// Отрицательное значение означает "не задано": limit → 20, minAttempts → 5.
// Ноль берется буквально: limit=0 дает пустой список, minAttempts=0 - все слова.
func (s *GlobalStatsService) TopMissed(ctx context.Context, limit, minAttempts int) (*TopMissedResult, error) {
	if limit < 0 {
		limit = defaultTopMissedLimit
	}
	if limit > maxTopMissedLimit {
		limit = maxTopMissedLimit
	}
	if minAttempts < 0 {
		minAttempts = entity.MinGlobalAttempts
	}

	stats, err := s.statsRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	words := make([]entity.TopMissedWord, 0)
	for id, st := range stats {
		if st.TotalAttempts < minAttempts {
			continue
		}
		w, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		words = append(words, entity.TopMissedWord{
			ID:              w.ID,
			Word:            w.Word,
			Definition:      w.Definition,
			Synonym:         w.Synonym,
			TotalAttempts:   st.TotalAttempts,
			Correct:         st.Correct,
			Incorrect:       st.Incorrect,
			ErrorPercentage: int(math.Round(st.DifficultyScore * 100)),
			DifficultyScore: st.DifficultyScore,
			Weight:          st.DifficultyWeight(),
		})
	}

	sort.Slice(words, func(i, j int) bool {
		a, b := words[i], words[j]
		if a.DifficultyScore != b.DifficultyScore {
			return a.DifficultyScore > b.DifficultyScore
		}
		if a.TotalAttempts != b.TotalAttempts {
			return a.TotalAttempts > b.TotalAttempts
		}
		return a.ID < b.ID
	})
	if len(words) > limit {
		words = words[:limit]
	}

	return &TopMissedResult{
		Words:             words,
		TotalTrackedWords: len(stats),
	}, nil
}

// Summary возвращает число отслеживаемых слов и общее число попыток
func (s *GlobalStatsService) Summary(ctx context.Context) (tracked, attempts int, err error) {
	stats, err := s.statsRepo.Load(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, st := range stats {
		attempts += st.TotalAttempts
	}
	return len(stats), attempts, nil
}

// LogSummary пишет в лог краткую сводку (используется планировщиком)
func (s *GlobalStatsService) LogSummary(ctx context.Context) {
	tracked, attempts, err := s.Summary(ctx)
	if err != nil {
		log.Printf("[GlobalStatsService] Ошибка получения сводки: %v", err)
		return
	}
	log.Printf("[GlobalStatsService] Сводка: слов отслеживается=%d, попыток=%d", tracked, attempts)
}

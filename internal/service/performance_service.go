package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/domain/repository"
	"github.com/satvocab/vocab-api/internal/service/selector"
)

const (
	statsListLimit         = 10
	statsMinAttempts       = 3
	unknownWordPlaceholder = "Unknown"
)

// PerformanceService работает с персональной статистикой ответов
type PerformanceService struct {
	perfRepo repository.PerformanceRepository
	catalog  *catalog.Catalog
}

// NewPerformanceService создает сервис персональной статистики
func NewPerformanceService(perfRepo repository.PerformanceRepository, c *catalog.Catalog) *PerformanceService {
	return &PerformanceService{
		perfRepo: perfRepo,
		catalog:  c,
	}
}

// GetPerformance возвращает счетчики пользователя по ID слова
func (s *PerformanceService) GetPerformance(ctx context.Context, userID uint) (map[int]entity.PerformanceCounts, error) {
	rows, err := s.perfRepo.GetUserPerformance(ctx, userID)
	if err != nil {
		return nil, err
	}

	perf := make(map[int]entity.PerformanceCounts, len(rows))
	for _, row := range rows {
		perf[row.WordID] = entity.PerformanceCounts{Correct: row.Correct, Incorrect: row.Incorrect}
	}
	return perf, nil
}

// UpdatePerformance учитывает один ответ пользователя
func (s *PerformanceService) UpdatePerformance(ctx context.Context, userID uint, wordID int, isCorrect bool) error {
	if !s.catalog.Contains(wordID) {
		return fmt.Errorf("%w: %d", ErrUnknownWord, wordID)
	}
	return s.perfRepo.RecordAnswer(ctx, userID, wordID, isCorrect)
}

// UserSignal возвращает пользовательский сигнал сложности
func (s *PerformanceService) UserSignal(ctx context.Context, userID uint) (selector.Signal, error) {
	perf, err := s.GetPerformance(ctx, userID)
	if err != nil {
		return nil, err
	}
	return selector.FromPerformance(perf), nil
}

// ResetPerformance удаляет всю статистику пользователя
func (s *PerformanceService) ResetPerformance(ctx context.Context, userID uint) error {
	return s.perfRepo.ResetUserPerformance(ctx, userID)
}

// WordStats возвращает статистику по каждому слову, упорядоченную по ID
func (s *PerformanceService) WordStats(ctx context.Context, userID uint) ([]entity.WordStat, error) {
	rows, err := s.perfRepo.GetUserPerformance(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := make([]entity.WordStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, s.wordStat(row))
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].WordID < stats[j].WordID })
	return stats, nil
}

// CalculateUserStats собирает данные для страницы статистики
func (s *PerformanceService) CalculateUserStats(ctx context.Context, userID uint) (*entity.UserStats, error) {
	wordStats, err := s.WordStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	var overview entity.StatsOverview
	for _, ws := range wordStats {
		overview.TotalWordsStudied++
		overview.TotalAttempts += ws.Total
		overview.TotalCorrect += ws.Correct
		overview.TotalIncorrect += ws.Incorrect
	}
	overview.OverallAccuracy = percent(overview.TotalCorrect, overview.TotalAttempts)

	practiced := filterStats(wordStats, func(ws entity.WordStat) bool { return ws.Total >= statsMinAttempts })

	return &entity.UserStats{
		Overview: overview,
		StrongestWords: topStats(practiced, func(a, b entity.WordStat) bool {
			return a.Accuracy > b.Accuracy
		}),
		WeakestWords: topStats(practiced, func(a, b entity.WordStat) bool {
			return a.Accuracy < b.Accuracy
		}),
		MostPracticed: topStats(wordStats, func(a, b entity.WordStat) bool {
			return a.Total > b.Total
		}),
		MostMissed: topStats(
			filterStats(wordStats, func(ws entity.WordStat) bool { return ws.Incorrect > 0 }),
			func(a, b entity.WordStat) bool { return a.Incorrect > b.Incorrect },
		),
		RecentWords: topStats(wordStats, func(a, b entity.WordStat) bool {
			return a.UpdatedAt.After(b.UpdatedAt)
		}),
	}, nil
}

func (s *PerformanceService) wordStat(row entity.WordPerformance) entity.WordStat {
	ws := entity.WordStat{
		WordID:    row.WordID,
		Word:      unknownWordPlaceholder,
		Correct:   row.Correct,
		Incorrect: row.Incorrect,
		Total:     row.Total(),
		Accuracy:  percent(row.Correct, row.Total()),
		UpdatedAt: row.UpdatedAt,
	}
	if w, ok := s.catalog.Get(row.WordID); ok {
		ws.Word = w.Word
		ws.Definition = w.Definition
		ws.Synonym = w.Synonym
	}
	return ws
}

// topStats сортирует копию по less (при равенстве - по ID) и берет первые statsListLimit
func topStats(stats []entity.WordStat, less func(a, b entity.WordStat) bool) []entity.WordStat {
	out := make([]entity.WordStat, len(stats))
	copy(out, stats)
	sort.SliceStable(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].WordID < out[j].WordID
	})
	if len(out) > statsListLimit {
		out = out[:statsListLimit]
	}
	return out
}

func filterStats(stats []entity.WordStat, keep func(entity.WordStat) bool) []entity.WordStat {
	out := make([]entity.WordStat, 0, len(stats))
	for _, ws := range stats {
		if keep(ws) {
			out = append(out, ws)
		}
	}
	return out
}

// percent возвращает округленный процент part/total; 0 при total == 0
func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

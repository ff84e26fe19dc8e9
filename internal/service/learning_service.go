package service

import (
	"context"
	"fmt"
	"log"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/internal/service/selector"
)

const (
	defaultLearningCount = 10
	maxLearningCount     = 100
)

// LearningService подбирает слова для режима обучения (карточки без вопросов)
type LearningService struct {
	generator    *selector.Generator
	statsService *GlobalStatsService
}

// NewLearningService создает сервис режима обучения
func NewLearningService(generator *selector.Generator, statsService *GlobalStatsService) *LearningService {
	return &LearningService{
		generator:    generator,
		statsService: statsService,
	}
}

// SelectWords выбирает count разных слов; трудные по глобальной статистике выпадают чаще.
// count == 0 → 10.
func (s *LearningService) SelectWords(ctx context.Context, count int) ([]entity.Word, error) {
	if count == 0 {
		count = defaultLearningCount
	}
	if count < 1 || count > maxLearningCount {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", apperrors.ErrValidation, maxLearningCount)
	}

	global, err := s.statsService.GlobalSignal(ctx)
	if err != nil {
		// без глобальной статистики выбор остается равномерным
		log.Printf("[LearningService] WARNING: глобальная статистика недоступна: %v", err)
		global = nil
	}

	return s.generator.LearningWords(count, global)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// PerformanceRepo реализует repository.PerformanceRepository
type PerformanceRepo struct {
	db *gorm.DB
}

// NewPerformanceRepo создает новый репозиторий статистики пользователя
func NewPerformanceRepo(db *gorm.DB) *PerformanceRepo {
	return &PerformanceRepo{db: db}
}

// GetUserPerformance возвращает все счетчики пользователя
func (r *PerformanceRepo) GetUserPerformance(ctx context.Context, userID uint) ([]entity.WordPerformance, error) {
	var rows []entity.WordPerformance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("word_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get performance for user #%d failed: %w", userID, err)
	}
	return rows, nil
}

// RecordAnswer атомарно увеличивает счетчик (INSERT ... ON CONFLICT DO UPDATE)
func (r *PerformanceRepo) RecordAnswer(ctx context.Context, userID uint, wordID int, isCorrect bool) error {
	correct, incorrect := 0, 1
	if isCorrect {
		correct, incorrect = 1, 0
	}
	now := time.Now()

	row := entity.WordPerformance{
		UserID:    userID,
		WordID:    wordID,
		Correct:   correct,
		Incorrect: incorrect,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"correct":    gorm.Expr("user_performance.correct + ?", correct),
			"incorrect":  gorm.Expr("user_performance.incorrect + ?", incorrect),
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("record answer user #%d word #%d failed: %w", userID, wordID, err)
	}
	return nil
}

// ResetUserPerformance удаляет всю статистику пользователя
func (r *PerformanceRepo) ResetUserPerformance(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.WordPerformance{}).Error
	if err != nil {
		return fmt.Errorf("reset performance for user #%d failed: %w", userID, err)
	}
	return nil
}

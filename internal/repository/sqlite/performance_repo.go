package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// PerformanceRepo реализует repository.PerformanceRepository поверх SQLite
type PerformanceRepo struct {
	db *sqlx.DB
}

// NewPerformanceRepo создает новый репозиторий статистики пользователя
func NewPerformanceRepo(db *sqlx.DB) *PerformanceRepo {
	return &PerformanceRepo{db: db}
}

// GetUserPerformance возвращает все счетчики пользователя
func (r *PerformanceRepo) GetUserPerformance(ctx context.Context, userID uint) ([]entity.WordPerformance, error) {
	rows := make([]entity.WordPerformance, 0)
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, word_id, correct, incorrect, updated_at
		FROM user_performance
		WHERE user_id = ?
		ORDER BY word_id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance for user #%d: %w", userID, err)
	}
	return rows, nil
}

// RecordAnswer увеличивает счетчик через INSERT ... ON CONFLICT
func (r *PerformanceRepo) RecordAnswer(ctx context.Context, userID uint, wordID int, isCorrect bool) error {
	correct, incorrect := 0, 1
	if isCorrect {
		correct, incorrect = 1, 0
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_performance (user_id, word_id, correct, incorrect, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, word_id) DO UPDATE SET
			correct = correct + excluded.correct,
			incorrect = incorrect + excluded.incorrect,
			updated_at = excluded.updated_at`,
		userID, wordID, correct, incorrect, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record answer user #%d word #%d: %w", userID, wordID, err)
	}
	return nil
}

// ResetUserPerformance удаляет всю статистику пользователя
func (r *PerformanceRepo) ResetUserPerformance(ctx context.Context, userID uint) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM user_performance WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to reset performance for user #%d: %w", userID, err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// PerformanceRepository хранит счетчики ответов пользователя по словам
type PerformanceRepository interface {
	GetUserPerformance(ctx context.Context, userID uint) ([]entity.WordPerformance, error)
	// RecordAnswer увеличивает correct или incorrect, создавая запись при необходимости
	RecordAnswer(ctx context.Context, userID uint, wordID int, isCorrect bool) error
	ResetUserPerformance(ctx context.Context, userID uint) error
}

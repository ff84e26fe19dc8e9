package repository

import (
	"context"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// GlobalStatsRepository хранит агрегированную статистику ответов всех пользователей
type GlobalStatsRepository interface {
	Load(ctx context.Context) (entity.GlobalStats, error)
	// Apply применяет пакет ответов и возвращает обновлённую статистику
	// по каждому ответу в исходном порядке
	Apply(ctx context.Context, batch []entity.AnswerSubmission) ([]entity.WordStatUpdate, error)
}

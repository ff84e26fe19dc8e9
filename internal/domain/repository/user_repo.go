package repository

import (
	"context"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create сохраняет пользователя; занятое имя → apperrors.ErrConflict
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}

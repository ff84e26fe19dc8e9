package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository поверх SQLite
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя и заполняет ID
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username %q is taken", apperrors.ErrConflict, user.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user id: %w", err)
	}
	user.ID = uint(id)
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user #%d: %w", id, err)
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return &user, nil
}

// isUniqueViolation проверяет нарушение UNIQUE в SQLite
func isUniqueViolation(err error) bool {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
			return true
		}
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/domain/repository"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
	bcryptCost        = 10
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// AuthService регистрирует и аутентифицирует пользователей
type AuthService struct {
	userRepo     repository.UserRepository
	tokenManager *manager.TokenManager
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, tokenManager *manager.TokenManager) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if tokenManager == nil {
		return nil, fmt.Errorf("TokenManager is required for AuthService")
	}
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}, nil
}

// Register создает пользователя и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, *manager.TokenResponse, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, nil, fmt.Errorf("%w: username already exists", apperrors.ErrConflict)
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d (%s)", user.ID, user.Username)

	token, err := s.tokenManager.IssueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// Login проверяет пароль и выдает токен
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, *manager.TokenResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неверный пароль для пользователя ID=%d", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.IssueToken(user)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func validateCredentials(username, password string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", apperrors.ErrValidation, minUsernameLength, maxUsernameLength)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username may contain only letters, digits, '_', '.', '-'", apperrors.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	return nil
}

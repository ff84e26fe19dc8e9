package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/pkg/auth"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

// createTestAuthService создаёт AuthService с настоящим TokenManager
func createTestAuthService(t *testing.T, userRepo *MockUserRepository) (*AuthService, *manager.TokenManager) {
	t.Helper()
	jwtService, err := auth.NewJWTService("test-secret-for-auth-service", time.Hour)
	require.NoError(t, err)
	tokenManager, err := manager.NewTokenManager(jwtService)
	require.NoError(t, err)
	authService, err := NewAuthService(userRepo, tokenManager)
	require.NoError(t, err)
	return authService, tokenManager
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	_, err := NewAuthService(nil, nil)
	assert.Error(t, err)

	_, err = NewAuthService(new(MockUserRepository), nil)
	assert.Error(t, err)
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = 42
		}).
		Return(nil)

	authService, tokenManager := createTestAuthService(t, mockUserRepo)

	// Act
	user, token, err := authService.Register(context.Background(), "  alice  ", "secret123")

	// Assert
	require.NoError(t, err, "Регистрация должна быть успешной")
	assert.Equal(t, uint(42), user.ID)
	assert.Equal(t, "alice", user.Username, "Имя должно быть обрезано")
	assert.NotEqual(t, "secret123", user.PasswordHash, "Пароль не должен храниться открыто")
	assert.True(t, user.CheckPassword("secret123"))

	claims, err := tokenManager.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"короткое имя", "ab", "secret123"},
		{"длинное имя", "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk", "secret123"},
		{"недопустимые символы", "bad name!", "secret123"},
		{"короткий пароль", "alice", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			authService, _ := createTestAuthService(t, mockUserRepo)

			user, token, err := authService.Register(context.Background(), tt.username, tt.password)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Nil(t, user)
			assert.Nil(t, token)
			mockUserRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(apperrors.ErrConflict)

	authService, _ := createTestAuthService(t, mockUserRepo)

	user, _, err := authService.Register(context.Background(), "alice", "secret123")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "username")
	assert.Nil(t, user)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &entity.User{ID: 7, Username: "bob", PasswordHash: string(hash)}

	t.Run("верный пароль", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByUsername", mock.Anything, "bob").Return(stored, nil)
		authService, _ := createTestAuthService(t, mockUserRepo)

		user, token, err := authService.Login(context.Background(), "bob", "secret123")

		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		assert.NotEmpty(t, token.Token)
		assert.True(t, token.ExpiresAt.After(time.Now()))
	})

	t.Run("неверный пароль", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByUsername", mock.Anything, "bob").Return(stored, nil)
		authService, _ := createTestAuthService(t, mockUserRepo)

		_, _, err := authService.Login(context.Background(), "bob", "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("неизвестный пользователь", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
		authService, _ := createTestAuthService(t, mockUserRepo)

		_, _, err := authService.Login(context.Background(), "ghost", "secret123")

		assert.ErrorIs(t, err, ErrInvalidCredentials, "Не должно раскрываться, что пользователя нет")
	})

	t.Run("пустые поля", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		authService, _ := createTestAuthService(t, mockUserRepo)

		_, _, err := authService.Login(context.Background(), " ", "")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		mockUserRepo.AssertNotCalled(t, "GetByUsername")
	})
}

package dto

import (
	"time"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse - публичные данные пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse возвращается после регистрации и входа.
// Токен дублируется в теле для клиентов без cookie.
type AuthResponse struct {
	Success   bool         `json:"success"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// NewAuthResponse создает ответ с пользователем и токеном
func NewAuthResponse(user *entity.User, token *manager.TokenResponse) AuthResponse {
	return AuthResponse{
		Success:   true,
		User:      NewUserResponse(user),
		Token:     token.Token,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
	}
}

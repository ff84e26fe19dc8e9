package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

const (
	// ContextUserID - ключ ID пользователя в контексте Gin
	ContextUserID = "user_id"
	// ContextUsername - ключ имени пользователя в контексте Gin
	ContextUsername = "username"
)

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	tokenManager *manager.TokenManager
}

// NewAuthMiddleware создает новый middleware с использованием TokenManager
func NewAuthMiddleware(tokenManager *manager.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tokenManager}
}

// RequireAuth пропускает только запросы с действительным токеном
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, errType, ok := m.extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": errType})
			return
		}

		if errType, ok := m.authenticate(c, token); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": errType})
			return
		}
		c.Next()
	}
}

// OptionalAuth устанавливает пользователя, если токен валиден; иначе запрос идет как гостевой
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, _, ok := m.extractToken(c); ok {
			m.authenticate(c, token)
		}
		c.Next()
	}
}

// extractToken берет токен из куки, затем из заголовка Authorization
func (m *AuthMiddleware) extractToken(c *gin.Context) (token, errType string, ok bool) {
	token, err := m.tokenManager.GetTokenFromCookie(c.Request)
	if err == nil {
		return token, "", true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "token_missing", false
	}

	// Проверяем формат заголовка Bearer {token}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "token_format", false
	}
	return parts[1], "", true
}

// authenticate проверяет токен и кладет пользователя в контекст
func (m *AuthMiddleware) authenticate(c *gin.Context, token string) (errType string, ok bool) {
	claims, err := m.tokenManager.ValidateToken(token)
	if err != nil {
		var tokenErr *manager.TokenError
		if errors.As(err, &tokenErr) && tokenErr.Type == manager.ExpiredAccessToken {
			return "token_expired", false
		}
		return "token_invalid", false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	return "", true
}

// UserID возвращает ID пользователя из контекста; nil для гостя
func UserID(c *gin.Context) *uint {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}

package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/middleware"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/internal/service"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

// handleError преобразует ошибку сервиса в HTTP-ответ {"error", "error_type"}
func handleError(c *gin.Context, component string, err error) {
	var tokenErr *manager.TokenError
	if errors.As(err, &tokenErr) {
		switch tokenErr.Type {
		case manager.ExpiredAccessToken:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "error_type": "token_expired"})
		case manager.InvalidAccessToken, manager.MissingAccessToken:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "error_type": "token_invalid"})
		default:
			log.Printf("[%s] ERROR: %v", component, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password", "error_type": "invalid_credentials"})
	case errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error(), "error_type": "session_expired"})
	case errors.Is(err, service.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "session_busy"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	case errors.Is(err, apperrors.ErrExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error(), "error_type": "expired"})
	default:
		log.Printf("[%s] ERROR: %v", component, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal_server_error"})
	}
}

// badRequest отвечает 400 с ошибкой валидации запроса
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "error_type": "validation_error"})
}

// currentUserID возвращает ID авторизованного пользователя или отвечает 401
func currentUserID(c *gin.Context) (uint, bool) {
	userID := middleware.UserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated", "error_type": "unauthorized"})
		return 0, false
	}
	return *userID, true
}

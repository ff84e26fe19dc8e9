package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/handler/dto"
	"github.com/satvocab/vocab-api/internal/service"
	"github.com/satvocab/vocab-api/pkg/auth/manager"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией
type AuthHandler struct {
	authService  *service.AuthService
	tokenManager *manager.TokenManager
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, tokenManager *manager.TokenManager) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
	}
}

// Register регистрирует пользователя и сразу выдает токен в cookie
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) зарегистрирован", user.ID, user.Username)
	h.tokenManager.SetAuthCookie(c.Writer, token)
	c.JSON(http.StatusCreated, dto.NewAuthResponse(user, token))
}

// Login проверяет учетные данные и устанавливает cookie auth_token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	h.tokenManager.SetAuthCookie(c.Writer, token)
	c.JSON(http.StatusOK, dto.NewAuthResponse(user, token))
}

// Logout удаляет cookie. Токен без сервера отозвать нельзя, он истечет сам.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.tokenManager.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// Me возвращает текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.NewUserResponse(user)})
}

package manager

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/pkg/auth"
)

// AuthTokenCookie - имя HttpOnly куки с JWT
const AuthTokenCookie = "auth_token"

// TokenErrorType определяет тип ошибки токена
type TokenErrorType string

const (
	TokenGenerationFailed TokenErrorType = "TOKEN_GENERATION_FAILED"
	InvalidAccessToken    TokenErrorType = "INVALID_ACCESS_TOKEN"
	ExpiredAccessToken    TokenErrorType = "EXPIRED_ACCESS_TOKEN"
	MissingAccessToken    TokenErrorType = "MISSING_ACCESS_TOKEN"
)

// TokenError представляет ошибку при работе с токенами
type TokenError struct {
	Type    TokenErrorType
	Message string
	Err     error
}

// Error возвращает строковое представление ошибки
func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap возвращает исходную ошибку
func (e *TokenError) Unwrap() error {
	return e.Err
}

// NewTokenError создает новую ошибку токена
func NewTokenError(tokenType TokenErrorType, message string, err error) *TokenError {
	return &TokenError{
		Type:    tokenType,
		Message: message,
		Err:     err,
	}
}

// TokenResponse - выданный токен
type TokenResponse struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenManager выдает токены и управляет кукой auth_token
type TokenManager struct {
	jwtService *auth.JWTService

	cookiePath     string
	cookieSecure   bool
	cookieSameSite http.SameSite
}

// NewTokenManager создает менеджер токенов
func NewTokenManager(jwtService *auth.JWTService) (*TokenManager, error) {
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for TokenManager")
	}
	return &TokenManager{
		jwtService:     jwtService,
		cookiePath:     "/",
		cookieSameSite: http.SameSiteLaxMode,
	}, nil
}

// SetProductionMode включает Secure для кук
func (m *TokenManager) SetProductionMode(isProduction bool) {
	m.cookieSecure = isProduction
	log.Printf("[TokenManager] Production mode: %v, Cookie Secure: %v", isProduction, m.cookieSecure)
}

// IssueToken выдает JWT для пользователя
func (m *TokenManager) IssueToken(user *entity.User) (*TokenResponse, error) {
	token, expiresAt, err := m.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, NewTokenError(TokenGenerationFailed, "failed to sign token", err)
	}
	return &TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken проверяет токен и возвращает claims
func (m *TokenManager) ValidateToken(token string) (*auth.JWTCustomClaims, error) {
	if token == "" {
		return nil, NewTokenError(MissingAccessToken, "token is missing", nil)
	}
	claims, err := m.jwtService.ParseToken(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, NewTokenError(ExpiredAccessToken, "token is expired", err)
		}
		return nil, NewTokenError(InvalidAccessToken, "token is invalid", err)
	}
	return claims, nil
}

// SetAuthCookie устанавливает токен в HttpOnly куку
func (m *TokenManager) SetAuthCookie(w http.ResponseWriter, token *TokenResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthTokenCookie,
		Value:    token.Token,
		Path:     m.cookiePath,
		Expires:  token.ExpiresAt,
		MaxAge:   int(m.jwtService.TTL().Seconds()),
		Secure:   m.cookieSecure,
		HttpOnly: true,
		SameSite: m.cookieSameSite,
	})
}

// ClearAuthCookie удаляет куку с токеном
func (m *TokenManager) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthTokenCookie,
		Value:    "",
		Path:     m.cookiePath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.cookieSecure,
		HttpOnly: true,
		SameSite: m.cookieSameSite,
	})
}

// GetTokenFromCookie получает токен из куки
func (m *TokenManager) GetTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(AuthTokenCookie)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", NewTokenError(MissingAccessToken, "auth cookie not found", err)
		}
		return "", err
	}
	return cookie.Value, nil
}

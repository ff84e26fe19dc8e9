package auth

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "vocab-api"

var (
	// ErrTokenExpired - срок действия токена истек
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid - токен поврежден, подпись неверна или алгоритм не HS256
	ErrTokenInvalid = errors.New("token is invalid")
)

// JWTCustomClaims содержит пользовательские поля токена
type JWTCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTService подписывает и проверяет токены HS256 общим секретом
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService создает сервис JWT
func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL возвращает время жизни токена
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken создает токен для пользователя и возвращает момент его истечения
func (s *JWTService) GenerateToken(userID uint, username string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &JWTCustomClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя ID=%d: %v", userID, err)
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *JWTService) ParseToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/domain/repository"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей в кеше
	KeyPrefix string
}

// AuthRateLimitConfig - лимит для login/register (защита от brute-force)
func AuthRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	if maxRequests <= 0 {
		maxRequests = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		KeyPrefix:   "rl:auth",
	}
}

// RateLimiter ограничивает частоту запросов фиксированными окнами.
// Счетчики хранятся в CacheRepository (Redis или память процесса).
type RateLimiter struct {
	cache repository.CacheRepository
	now   func() time.Time
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(cache repository.CacheRepository) *RateLimiter {
	return &RateLimiter{cache: cache, now: time.Now}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + endpoint path + начала окна.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		path := c.FullPath() // Gin route pattern, e.g. "/api/auth/login"
		if path == "" {
			path = c.Request.URL.Path
		}

		now := rl.now()
		windowStart := now.Truncate(cfg.Window)
		windowEnd := windowStart.Add(cfg.Window)
		key := fmt.Sprintf("%s:%s:%s:%d", cfg.KeyPrefix, clientIP, path, windowStart.Unix())

		count, err := rl.cache.Increment(key)
		if err != nil {
			// При ошибке кеша пропускаем запрос (fail-open), но логируем
			log.Printf("[RateLimiter] Cache error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		// Первый запрос в окне задает срок жизни счетчика
		if count == 1 {
			if err := rl.cache.ExpireAt(key, windowEnd); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		retryAfter := int(windowEnd.Sub(now).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for IP=%s path=%s. Count=%d, Limit=%d",
				clientIP, path, count, cfg.MaxRequests)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"error_type":  "rate_limited",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

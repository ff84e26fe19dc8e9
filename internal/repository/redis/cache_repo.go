package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// CacheRepo реализует repository.CacheRepository поверх Redis.
// Используется для сессий викторин и счетчиков лимита запросов.
type CacheRepo struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

// NewCacheRepo создает новый репозиторий кеша
func NewCacheRepo(client redis.UniversalClient) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{
		client:  client,
		timeout: 3 * time.Second,
	}, nil
}

// WithPrefix возвращает копию репозитория, добавляющую префикс ко всем ключам
func (r *CacheRepo) WithPrefix(prefix string) *CacheRepo {
	cp := *r
	cp.keyPrefix = prefix
	return &cp
}

func (r *CacheRepo) key(k string) string {
	return r.keyPrefix + k
}

func (r *CacheRepo) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Set сохраняет значение в кеше
func (r *CacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Set(ctx, r.key(key), value, expiration).Err()
}

// Get получает значение из кеша
func (r *CacheRepo) Get(key string) (string, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Delete удаляет значение из кеша
func (r *CacheRepo) Delete(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Del(ctx, r.key(key)).Err()
}

// Increment увеличивает значение на 1
func (r *CacheRepo) Increment(key string) (int64, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Incr(ctx, r.key(key)).Result()
}

// SetJSON сохраняет структуру в JSON
func (r *CacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Set(key, data, expiration)
}

// GetJSON получает структуру из JSON
func (r *CacheRepo) GetJSON(key string, dest interface{}) error {
	ctx, cancel := r.ctx()
	defer cancel()
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Exists проверяет существование ключа
func (r *CacheRepo) Exists(key string) (bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ExpireAt устанавливает время истечения ключа
func (r *CacheRepo) ExpireAt(key string, expiration time.Time) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.ExpireAt(ctx, r.key(key), expiration).Err()
}

// SetNX устанавливает значение, только если ключа нет.
// Возвращает true, если ключ был установлен.
func (r *CacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.SetNX(ctx, r.key(key), value, expiration).Result()
}

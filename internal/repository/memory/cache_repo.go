package memory

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

type item struct {
	value     string
	expiresAt time.Time // нулевое значение - без срока
}

func (i item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// CacheRepo реализует repository.CacheRepository в памяти процесса.
// Используется, когда Redis отключен.
type CacheRepo struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
}

// NewCacheRepo создает пустой кеш
func NewCacheRepo() *CacheRepo {
	return &CacheRepo{
		items: make(map[string]item),
		now:   time.Now,
	}
}

func (r *CacheRepo) deadline(expiration time.Duration) time.Time {
	if expiration <= 0 {
		return time.Time{}
	}
	return r.now().Add(expiration)
}

// Set сохраняет значение в кеше
func (r *CacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	s, err := stringify(value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = item{value: s, expiresAt: r.deadline(expiration)}
	return nil
}

// Get получает значение из кеша
func (r *CacheRepo) Get(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[key]
	if !ok || it.expired(r.now()) {
		return "", apperrors.ErrNotFound
	}
	return it.value, nil
}

// Delete удаляет значение из кеша
func (r *CacheRepo) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}

// Increment увеличивает значение на 1, сохраняя срок жизни
func (r *CacheRepo) Increment(key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[key]
	if !ok || it.expired(r.now()) {
		it = item{value: "0"}
	}

	n, err := strconv.ParseInt(it.value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("value of %q is not an integer", key)
	}
	n++
	it.value = strconv.FormatInt(n, 10)
	r.items[key] = it
	return n, nil
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
	s, err := r.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(s), dest)
}

// Exists проверяет существование ключа
func (r *CacheRepo) Exists(key string) (bool, error) {
	_, err := r.Get(key)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ExpireAt устанавливает время истечения ключа
func (r *CacheRepo) ExpireAt(key string, expiration time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[key]
	if !ok || it.expired(r.now()) {
		return nil
	}
	it.expiresAt = expiration
	r.items[key] = it
	return nil
}

// SetNX устанавливает значение, только если ключа нет
func (r *CacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	s, err := stringify(value)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if it, ok := r.items[key]; ok && !it.expired(r.now()) {
		return false, nil
	}
	r.items[key] = item{value: s, expiresAt: r.deadline(expiration)}
	return true, nil
}

// PurgeExpired удаляет просроченные записи и возвращает их количество
func (r *CacheRepo) PurgeExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, it := range r.items {
		if it.expired(now) {
			delete(r.items, key)
			removed++
		}
	}
	return removed
}

// Len возвращает количество записей, включая еще не удаленные просроченные
func (r *CacheRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func stringify(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

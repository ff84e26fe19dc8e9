package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
)

// newTestCache возвращает кеш с управляемыми часами
func newTestCache() (*CacheRepo, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCacheRepo()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCacheRepo_SetGet(t *testing.T) {
	c, now := newTestCache()

	require.NoError(t, c.Set("a", "1", time.Minute))
	require.NoError(t, c.Set("b", 42, 0))

	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	*now = now.Add(time.Minute)
	_, err = c.Get("a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "запись истекла")

	v, err = c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "42", v, "без срока запись не истекает")

	require.NoError(t, c.Delete("b"))
	_, err = c.Get("b")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCacheRepo_JSON(t *testing.T) {
	c, _ := newTestCache()

	type payload struct {
		ID    string `json:"id"`
		Count int    `json:"count"`
	}
	require.NoError(t, c.SetJSON("p", payload{ID: "x", Count: 3}, time.Hour))

	var got payload
	require.NoError(t, c.GetJSON("p", &got))
	assert.Equal(t, payload{ID: "x", Count: 3}, got)

	assert.ErrorIs(t, c.GetJSON("missing", &got), apperrors.ErrNotFound)
}

func TestCacheRepo_IncrementAndExpire(t *testing.T) {
	c, now := newTestCache()

	n, err := c.Increment("rl")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, c.ExpireAt("rl", now.Add(10*time.Second)))
	n, err = c.Increment("rl")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	*now = now.Add(10 * time.Second)
	n, err = c.Increment("rl")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "после истечения счетчик начинается заново")

	require.NoError(t, c.Set("text", "abc", 0))
	_, err = c.Increment("text")
	assert.Error(t, err)
}

func TestCacheRepo_SetNXAndExists(t *testing.T) {
	c, now := newTestCache()

	ok, err := c.SetNX("lock", "1", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX("lock", "2", time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "ключ уже существует")

	exists, err := c.Exists("lock")
	require.NoError(t, err)
	assert.True(t, exists)

	*now = now.Add(time.Second)
	exists, err = c.Exists("lock")
	require.NoError(t, err)
	assert.False(t, exists)

	ok, err = c.SetNX("lock", "3", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "после истечения ключ можно занять снова")
}

func TestCacheRepo_PurgeExpired(t *testing.T) {
	c, now := newTestCache()

	require.NoError(t, c.Set("short", "1", time.Second))
	require.NoError(t, c.Set("long", "1", time.Hour))
	require.NoError(t, c.Set("forever", "1", 0))

	assert.Equal(t, 0, c.PurgeExpired())

	*now = now.Add(time.Minute)
	assert.Equal(t, 1, c.PurgeExpired())
	assert.Equal(t, 2, c.Len())
}

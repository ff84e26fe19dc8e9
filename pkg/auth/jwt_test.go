package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	s, err := NewJWTService("secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := s.GenerateToken(42, "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	s, err := NewJWTService("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, s.TTL())

	_, err = NewJWTService("", time.Hour)
	assert.Error(t, err)
}

func TestJWTService_Expired(t *testing.T) {
	s, err := NewJWTService("secret", time.Hour)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := s.GenerateToken(1, "alice")
	require.NoError(t, err)

	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_Invalid(t *testing.T) {
	s, err := NewJWTService("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTService("other-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := other.GenerateToken(1, "alice")
	require.NoError(t, err)

	_, err = s.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid, "чужая подпись")

	_, err = s.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTCustomClaims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid, "alg=none отклоняется")
}

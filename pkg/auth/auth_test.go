package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	token, err := m.GenerateToken("42", "an", "an@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.UserID)
	require.Equal(t, "an", claims.Username)
	require.Equal(t, "an@example.com", claims.Email)
	require.Equal(t, time.Hour, m.GetTokenDuration())

	refresh, err := m.GenerateRefreshToken("42")
	require.NoError(t, err)
	claims, err = m.ValidateToken(refresh)
	require.NoError(t, err)
	require.Equal(t, "42", claims.UserID)
	require.Empty(t, claims.Email)
}

func TestValidateTokenRejects(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour, time.Hour)
	token, err := m.GenerateToken("42", "an", "an@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour, time.Hour).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager("secret", time.Minute, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := expired.GenerateToken("42", "an", "an@example.com")
	require.NoError(t, err)
	_, err = m.ValidateToken(stale)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("mật khẩu")
	require.NoError(t, err)
	require.NotEqual(t, "mật khẩu", hash)
	require.True(t, CheckPasswordHash("mật khẩu", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
}

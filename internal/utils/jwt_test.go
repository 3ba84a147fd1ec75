package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-key"))
	require.NoError(t, err)
	return s
}

// ── TokenExpiry ──────────────────────────────────────────────────────────────

func TestTokenExpiry_ReadsExpClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got), "expected %v, got %v", exp, got)
}

func TestTokenExpiry_ExpiredTokenStillParses(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got))
}

func TestTokenExpiry_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.RegisteredClaims{Subject: "user"})

	_, err := TokenExpiry(token)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestTokenExpiry_NotAJWT(t *testing.T) {
	_, err := TokenExpiry("S=s1:U=opaque-developer-token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoExpiry)
}

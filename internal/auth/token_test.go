package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	raw, err := m.Issue(42)
	require.NoError(t, err)

	id, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenManager_UniqueIDs(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	a, err := m.Issue(1)
	require.NoError(t, err)
	b, err := m.Issue(1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenManager_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenManager("secret", time.Hour, WithClock(fixedClock(issuedAt)))

	raw, err := issuer.Issue(7)
	require.NoError(t, err)

	stillValid := NewTokenManager("secret", time.Hour, WithClock(fixedClock(issuedAt.Add(59*time.Minute))))
	_, err = stillValid.Parse(raw)
	assert.NoError(t, err)

	later := NewTokenManager("secret", time.Hour, WithClock(fixedClock(issuedAt.Add(2*time.Hour))))
	_, err = later.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}

	valid := jwt.RegisteredClaims{
		Subject:   "5",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid)},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, []byte("secret"), valid)},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
		{"no expiry", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{Subject: "5"})},
		{"non-numeric subject", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})},
		{"zero subject", sign(jwt.SigningMethodHS256, []byte("secret"), jwt.RegisteredClaims{
			Subject:   "0",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenManager("s", 0).ttl)
}

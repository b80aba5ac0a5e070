package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(7, "ann@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_WrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(7, "ann@x.com")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_Garbage(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("test-secret")

	// Sign a token whose expiry is already in the past.
	claims := &Claims{
		UserID: 7,
		Email:  "ann@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	stale, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(stale)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

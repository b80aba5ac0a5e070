package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry is the duration for which access tokens are valid.
const AccessTokenExpiry = 15 * time.Minute

var (
	// ErrTokenExpired is returned when a token's expiry claim has lapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for any other verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the access-token JWT claims.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService mints and validates stateless access tokens. Refresh tokens are
// not JWTs: they are opaque server-tracked strings owned by the refresh token
// service.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given signing secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateAccessToken generates a signed, short-lived access token for the user.
func (s *JWTService) GenerateAccessToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the claims.
// Expired tokens fail with ErrTokenExpired, everything else with ErrTokenInvalid.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskify/internal/model"
	"taskify/internal/repository"
)

// RefreshTokenExpiry is the duration for which refresh tokens are valid.
const RefreshTokenExpiry = 7 * 24 * time.Hour

var (
	// ErrRefreshTokenNotFound is returned when no record matches the token string.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when the record exists but has lapsed.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// RefreshTokenService owns the rotating refresh credential: one live token
// per user, rotated on issue, revoked on logout, expiry checked at use time.
type RefreshTokenService interface {
	Issue(ctx context.Context, userID uint) (*model.RefreshToken, error)
	Verify(ctx context.Context, token string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, userID uint) error
}

type refreshTokenService struct {
	repo repository.RefreshTokenRepository
}

// NewRefreshTokenService creates a new refresh token service.
func NewRefreshTokenService(repo repository.RefreshTokenRepository) RefreshTokenService {
	return &refreshTokenService{repo: repo}
}

// Issue rotates the user's session: any existing token is deleted before the
// replacement is inserted, so at most one token per user survives the call.
func (s *refreshTokenService) Issue(ctx context.Context, userID uint) (*model.RefreshToken, error) {
	if err := s.repo.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	token := &model.RefreshToken{
		Token:      uuid.New().String(),
		UserID:     userID,
		ExpiryDate: time.Now().Add(RefreshTokenExpiry),
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	return token, nil
}

// Verify looks the token up by its string. An expired record is deleted as a
// side effect, so a retry with the same string reports not-found. The token is
// returned unchanged: refresh calls reuse the same string until rotation.
func (s *refreshTokenService) Verify(ctx context.Context, token string) (*model.RefreshToken, error) {
	rt, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	if rt.ExpiryDate.Before(time.Now()) {
		if err := s.repo.Delete(ctx, rt); err != nil {
			return nil, fmt.Errorf("delete expired refresh token: %w", err)
		}
		return nil, ErrRefreshTokenExpired
	}

	return rt, nil
}

// Revoke deletes the user's token. No-op if none exists.
func (s *refreshTokenService) Revoke(ctx context.Context, userID uint) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

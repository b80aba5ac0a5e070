package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskify/internal/model"
)

// MockRefreshTokenRepository is a mock implementation of RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestRefreshTokenService_Issue(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	// Rotation: existing token deleted before the new one is inserted.
	repo.On("DeleteByUserID", mock.Anything, uint(7)).Return(nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.RefreshToken")).Return(nil)

	svc := NewRefreshTokenService(repo)
	before := time.Now()
	token, err := svc.Issue(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, uint(7), token.UserID)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, before.Add(RefreshTokenExpiry), token.ExpiryDate, time.Minute)
	repo.AssertExpectations(t)

	// A second issue produces a distinct token string.
	token2, err := svc.Issue(context.Background(), 7)
	assert.NoError(t, err)
	assert.NotEqual(t, token.Token, token2.Token)
}

func TestRefreshTokenService_Verify(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		repo := new(MockRefreshTokenRepository)
		repo.On("FindByToken", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewRefreshTokenService(repo)
		_, err := svc.Verify(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	})

	t.Run("expired token is deleted", func(t *testing.T) {
		stale := &model.RefreshToken{Token: "old", UserID: 7, ExpiryDate: time.Now().Add(-time.Minute)}
		repo := new(MockRefreshTokenRepository)
		repo.On("FindByToken", mock.Anything, "old").Return(stale, nil)
		repo.On("Delete", mock.Anything, stale).Return(nil)

		svc := NewRefreshTokenService(repo)
		_, err := svc.Verify(context.Background(), "old")
		assert.ErrorIs(t, err, ErrRefreshTokenExpired)
		repo.AssertExpectations(t)
	})

	t.Run("live token is returned unchanged", func(t *testing.T) {
		live := &model.RefreshToken{Token: "live", UserID: 7, ExpiryDate: time.Now().Add(time.Hour)}
		repo := new(MockRefreshTokenRepository)
		repo.On("FindByToken", mock.Anything, "live").Return(live, nil)

		svc := NewRefreshTokenService(repo)
		got, err := svc.Verify(context.Background(), "live")
		assert.NoError(t, err)
		assert.Equal(t, live, got)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRefreshTokenService_Revoke(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	repo.On("DeleteByUserID", mock.Anything, uint(7)).Return(nil)

	svc := NewRefreshTokenService(repo)
	// Idempotent: revoking with no live token is still a success.
	assert.NoError(t, svc.Revoke(context.Background(), 7))
	assert.NoError(t, svc.Revoke(context.Background(), 7))
	repo.AssertNumberOfCalls(t, "DeleteByUserID", 2)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"taskify/internal/model"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token *model.RefreshToken) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository builds a GORM-backed repository.
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *refreshTokenRepository) FindByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token *model.RefreshToken) error {
	return r.db.WithContext(ctx).Delete(token).Error
}

// DeleteByUserID removes the user's token if any; deleting nothing is not an error.
func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error
}

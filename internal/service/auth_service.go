package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskify/internal/auth"
	apperrors "taskify/internal/errors"
	"taskify/internal/model"
	"taskify/internal/repository"
)

const bcryptCost = 10

// TokenPair is the result of a successful register/login/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users         repository.UserRepository
	jwtService    *auth.JWTService
	refreshTokens RefreshTokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, refreshTokens RefreshTokenService) AuthService {
	return &authService{
		users:         users,
		jwtService:    jwtService,
		refreshTokens: refreshTokens,
	}
}

// Register creates a new user with a hashed password and opens a session.
func (s *authService) Register(ctx context.Context, name, email, password string) (*TokenPair, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session, rotating out any prior one.
// Unknown email and wrong password are collapsed into the same failure.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login: unknown email %q", email)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Refresh mints a new access token for a valid refresh token. The refresh
// token string is returned unchanged; only login/register rotate it.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.refreshTokens.Verify(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) || errors.Is(err, ErrRefreshTokenExpired) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rt.Token,
	}, nil
}

// Logout revokes the session behind the refresh token. Already-issued access
// tokens stay valid until their own expiry; only further refreshes are cut off.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	rt, err := s.refreshTokens.Verify(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) || errors.Is(err, ErrRefreshTokenExpired) {
			return apperrors.ErrInvalidRefreshToken
		}
		return err
	}
	return s.refreshTokens.Revoke(ctx, rt.UserID)
}

// openSession issues the access/refresh pair for an authenticated user.
func (s *authService) openSession(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rt, err := s.refreshTokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: rt.Token,
	}, nil
}

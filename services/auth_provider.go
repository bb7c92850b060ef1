package services

import (
	"context"
	"fmt"
	"time"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthProvider is the authentication collaborator the auth store delegates
// to. Implementations return human-readable errors suitable for inline
// display.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (*models.SessionUser, *TokenPair, error)
	Signup(ctx context.Context, name, email, password string) (*models.SessionUser, *TokenPair, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.SessionUser, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// LocalAuthProvider implements AuthProvider against the local accounts
// table with bcrypt hashing and JWT pairs.
type LocalAuthProvider struct {
	users  repository.UserRepository
	tokens *TokenService
	logger *zap.Logger
}

func NewLocalAuthProvider(users repository.UserRepository, tokens *TokenService, logger *zap.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{users: users, tokens: tokens, logger: logger}
}

func (p *LocalAuthProvider) Login(ctx context.Context, email, password string) (*models.SessionUser, *TokenPair, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("invalid email or password")
	}

	pair, tokenID, err := p.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		p.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create session")
	}

	if err := p.storeRefreshToken(ctx, user.ID, tokenID); err != nil {
		p.logger.Warn("Failed to store refresh token", zap.Error(err))
	}

	return models.SessionUserFrom(user), pair, nil
}

func (p *LocalAuthProvider) Signup(ctx context.Context, name, email, password string) (*models.SessionUser, *TokenPair, error) {
	if _, err := p.users.FindByEmail(ctx, email); err == nil {
		return nil, nil, fmt.Errorf("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password")
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     name,
		Password: string(hashed),
		Role:     "user",
	}
	if err := p.users.Create(ctx, user); err != nil {
		p.logger.Error("Failed to create account", zap.String("email", email), zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create account")
	}

	pair, tokenID, err := p.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session")
	}
	if err := p.storeRefreshToken(ctx, user.ID, tokenID); err != nil {
		p.logger.Warn("Failed to store refresh token", zap.Error(err))
	}

	return models.SessionUserFrom(user), pair, nil
}

// UpdateProfile merges the non-empty fields of update into the account and
// persists it.
func (p *LocalAuthProvider) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.SessionUser, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}

	user, err := p.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}

	if err := p.users.Update(ctx, user); err != nil {
		p.logger.Error("Failed to update profile", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile")
	}
	return models.SessionUserFrom(user), nil
}

// Refresh rotates a refresh token: the old jti is revoked and a new pair is
// issued.
func (p *LocalAuthProvider) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := p.tokens.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, fmt.Errorf("invalid refresh token")
	}
	stored, err := p.users.GetRefreshTokenByTokenID(ctx, jti)
	if err != nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("refresh token revoked or expired")
	}

	userIDStr, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userIDStr == "" || email == "" {
		return nil, fmt.Errorf("invalid refresh token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token claims")
	}

	if err := p.users.RevokeRefreshTokenByTokenID(ctx, jti); err != nil {
		p.logger.Warn("Failed to revoke refresh token", zap.String("jti", jti), zap.Error(err))
	}

	pair, newID, err := p.tokens.GenerateTokenPair(userIDStr, email, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create session")
	}
	if err := p.storeRefreshToken(ctx, userID, newID); err != nil {
		p.logger.Warn("Failed to store refresh token", zap.Error(err))
	}
	return pair, nil
}

func (p *LocalAuthProvider) storeRefreshToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	return p.users.CreateRefreshToken(ctx, &models.RefreshToken{
		TokenID:   tokenID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	})
}

package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	// Token is returned by GenerateToken when GenerateTokenFn is unset.
	Token string
	// Claims is returned by ValidateToken when ValidateTokenFn is unset.
	Claims *auth.Claims
	// Err is returned by both operations when set.
	Err error
	// Lifetime is reported by TokenLifetime; defaults to one hour.
	Lifetime time.Duration

	// Custom behavior functions
	GenerateTokenFn func(ctx context.Context, username string) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements auth.JWTService.GenerateToken
func (m *MockJWTService) GenerateToken(ctx context.Context, username string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, username)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

// ValidateToken implements auth.JWTService.ValidateToken
func (m *MockJWTService) ValidateToken(
	ctx context.Context,
	tokenString string,
) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}

// TokenLifetime implements auth.JWTService.TokenLifetime
func (m *MockJWTService) TokenLifetime() time.Duration {
	if m.Lifetime > 0 {
		return m.Lifetime
	}
	return time.Hour
}

package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT session token for the given username.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, username string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken if the token has expired and ErrInvalidToken for
	// signature or shape failures.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// TokenLifetime reports the configured token lifetime, used to set the
	// session cookie Max-Age consistently with the JWT expiry.
	TokenLifetime() time.Duration
}

// Claims represents the session token's claim set. The subject is the
// username; the token is stateless, so expiry is the only termination
// mechanism besides the client discarding its cookie.
type Claims struct {
	// Subject is the username the token was issued for.
	Subject string `json:"sub,omitempty"`

	// Standard registered JWT claims
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

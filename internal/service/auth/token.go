package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TokenCodec signs claim sets into bearer tokens and decodes them back.
type TokenCodec interface {
	// Issue signs claims and returns the token with its expiry. IssuedAt and
	// ExpiresAt on the input are ignored; the codec stamps them.
	Issue(ctx context.Context, claims Claims) (string, time.Time, error)

	// Decode verifies and decodes a token. On failure it returns exactly one of
	// ErrMissingToken, ErrExpiredToken or ErrInvalidToken.
	Decode(ctx context.Context, token string) (*Claims, error)
}

// Claims is the point-in-time snapshot embedded in a token. Email and Role are
// denormalized at issuance and may be stale by the time the token is presented.
type Claims struct {
	Subject   uuid.UUID
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ClaimsFor builds the claim set for user.
func ClaimsFor(user *domain.User) Claims {
	return Claims{
		Subject: user.ID,
		Email:   user.Email,
		Role:    user.Role,
	}
}

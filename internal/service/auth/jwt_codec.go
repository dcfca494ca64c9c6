package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

// signingMethod is the only algorithm issued or accepted.
var signingMethod = jwt.SigningMethodHS256

// hmacTokenCodec implements TokenCodec with HMAC-SHA256 signed JWTs.
type hmacTokenCodec struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time
}

// jwtClaims is the wire form of Claims.
type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var _ TokenCodec = (*hmacTokenCodec)(nil)

// CodecOption customizes a token codec.
type CodecOption func(*hmacTokenCodec)

// WithClock replaces the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *hmacTokenCodec) {
		c.timeFunc = now
	}
}

// NewTokenCodec creates an HS256 token codec from cfg. The secret is copied so
// later mutation of cfg has no effect.
func NewTokenCodec(cfg config.AuthConfig, opts ...CodecOption) (TokenCodec, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}

	c := &hmacTokenCodec{
		signingKey: []byte(cfg.JWTSecret),
		lifetime:   time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue creates a signed token for claims.
func (c *hmacTokenCodec) Issue(ctx context.Context, claims Claims) (string, time.Time, error) {
	log := logger.FromContext(ctx)

	now := c.timeFunc()
	issuedAt := jwt.NewNumericDate(now)
	expiresAt := jwt.NewNumericDate(now.Add(c.lifetime))

	token := jwt.NewWithClaims(signingMethod, jwtClaims{
		Email: claims.Email,
		Role:  claims.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject.String(),
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		log.Error("failed to sign access token",
			"error", err,
			"user_id", claims.Subject,
			"signing_method", signingMethod.Alg())
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt.Time, nil
}

// Decode verifies tokenString and returns its claims. A token is expired from
// its exp instant onward; there is no leeway.
func (c *hmacTokenCodec) Decode(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	now := c.timeFunc()
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwtClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// WithValidMethods already filters, this keeps the keyfunc safe on its own.
			if method, ok := token.Method.(*jwt.SigningMethodHMAC); !ok || method.Alg() != signingMethod.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.signingKey, nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token rejected: expired", "error", err)
			return nil, ErrExpiredToken
		}
		log.Debug("token rejected: invalid",
			"error", err,
			"error_type", fmt.Sprintf("%T", err))
		return nil, ErrInvalidToken
	}

	wire, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid || wire.IssuedAt == nil {
		log.Debug("token rejected: unexpected claims")
		return nil, ErrInvalidToken
	}

	subject, err := uuid.Parse(wire.Subject)
	if err != nil {
		log.Debug("token rejected: invalid subject", "error", err)
		return nil, ErrInvalidToken
	}

	role, err := domain.ParseRole(wire.Role)
	if err != nil {
		log.Debug("token rejected: invalid role", "role", wire.Role)
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject:   subject,
		Email:     wire.Email,
		Role:      role,
		IssuedAt:  wire.IssuedAt.Time,
		ExpiresAt: wire.ExpiresAt.Time,
	}, nil
}

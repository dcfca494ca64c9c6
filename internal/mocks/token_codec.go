package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// MockTokenCodec implements auth.TokenCodec for testing
type MockTokenCodec struct {
	IssueFn  func(ctx context.Context, claims auth.Claims) (string, time.Time, error)
	DecodeFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token     string
	ExpiresAt time.Time
	IssueErr  error
	Claims    *auth.Claims
	DecodeErr error
}

var _ auth.TokenCodec = (*MockTokenCodec)(nil)

// Issue implements auth.TokenCodec
func (m *MockTokenCodec) Issue(ctx context.Context, claims auth.Claims) (string, time.Time, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, claims)
	}
	return m.Token, m.ExpiresAt, m.IssueErr
}

// Decode implements auth.TokenCodec
func (m *MockTokenCodec) Decode(ctx context.Context, token string) (*auth.Claims, error) {
	if m.DecodeFn != nil {
		return m.DecodeFn(ctx, token)
	}
	return m.Claims, m.DecodeErr
}

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// UserStore defines persistence for principals. It is the credential store of
// the authentication core.
type UserStore interface {
	// Create saves a new user. Uniqueness of the email is enforced atomically by
	// the backing store; a duplicate yields ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	// FindByID returns the user with the given ID, or (nil, nil) if absent.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindByEmail returns the user with the given (normalized) email, or
	// (nil, nil) if absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every user ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile persists the self-service fields (name). It never changes
	// the role or the password hash. Returns ErrUserNotFound if absent.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// UpdateRole changes the role of a user. Returns ErrUserNotFound if absent.
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error

	// Delete removes a user and, through cascading deletes, everything it owns.
	// Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

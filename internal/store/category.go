package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// CategoryStore defines persistence for categories. Every method is scoped to
// the owning user; a category owned by someone else is reported as not found.
type CategoryStore interface {
	// Create saves a category. Returns ErrCategoryExists if the owner already
	// has a category with the same name.
	Create(ctx context.Context, category *domain.Category) error

	// GetByID returns ErrCategoryNotFound if absent or not owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error)

	// List returns the owner's categories ordered by name.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)

	// Update persists name and color. Returns ErrCategoryNotFound or ErrCategoryExists.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes the category; tasks filed under it become uncategorized.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

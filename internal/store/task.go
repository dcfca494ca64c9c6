package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskFilter narrows List results. Zero values mean "any".
type TaskFilter struct {
	Status     domain.TaskStatus
	CategoryID *uuid.UUID
}

// TaskStore defines persistence for tasks, scoped to the owning user.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if absent or not owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error)

	// List returns the owner's tasks, newest first.
	List(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	Update(ctx context.Context, task *domain.Task) error

	Delete(ctx context.Context, userID, id uuid.UUID) error
}

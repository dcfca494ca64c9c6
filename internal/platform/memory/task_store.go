package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore implements store.TaskStore in memory.
type TaskStore struct {
	db *DB
}

var _ store.TaskStore = (*TaskStore)(nil)

// categoryUsable reports whether a task owned by userID may reference
// categoryID. Caller holds the lock.
func (s *TaskStore) categoryUsable(userID uuid.UUID, categoryID *uuid.UUID) bool {
	if categoryID == nil {
		return true
	}
	c, ok := s.db.categories[*categoryID]
	return ok && c.UserID == userID
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.usersByID[task.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	if !s.categoryUsable(task.UserID, task.CategoryID) {
		return store.ErrCategoryNotFound
	}
	s.db.tasks[task.ID] = copyTask(task)
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	t, ok := s.db.tasks[id]
	if !ok || t.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(t), nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, t := range s.db.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}
	if !s.categoryUsable(task.UserID, task.CategoryID) {
		return store.ErrCategoryNotFound
	}
	updated := copyTask(task)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	s.db.tasks[task.ID] = updated
	return nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	t, ok := s.db.tasks[id]
	if !ok || t.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(s.db.tasks, id)
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CategoryStore implements store.CategoryStore in memory.
type CategoryStore struct {
	db *DB
}

var _ store.CategoryStore = (*CategoryStore)(nil)

// nameTaken reports whether userID already owns a category called name,
// ignoring the category with id except. Caller holds the lock.
func (s *CategoryStore) nameTaken(userID uuid.UUID, name string, except uuid.UUID) bool {
	for _, c := range s.db.categories {
		if c.UserID == userID && c.ID != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// Create implements store.CategoryStore.
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.usersByID[category.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	if s.nameTaken(category.UserID, category.Name, uuid.Nil) {
		return store.ErrCategoryExists
	}
	s.db.categories[category.ID] = copyCategory(category)
	return nil
}

// GetByID implements store.CategoryStore.
func (s *CategoryStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	c, ok := s.db.categories[id]
	if !ok || c.UserID != userID {
		return nil, store.ErrCategoryNotFound
	}
	return copyCategory(c), nil
}

// List implements store.CategoryStore.
func (s *CategoryStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	categories := make([]*domain.Category, 0)
	for _, c := range s.db.categories {
		if c.UserID == userID {
			categories = append(categories, copyCategory(c))
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Update implements store.CategoryStore.
func (s *CategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.categories[category.ID]
	if !ok || existing.UserID != category.UserID {
		return store.ErrCategoryNotFound
	}
	if s.nameTaken(category.UserID, category.Name, category.ID) {
		return store.ErrCategoryExists
	}
	existing.Name = category.Name
	existing.Color = category.Color
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements store.CategoryStore. Tasks under the category become
// uncategorized.
func (s *CategoryStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.categories[id]
	if !ok || c.UserID != userID {
		return store.ErrCategoryNotFound
	}
	delete(s.db.categories, id)
	for _, t := range s.db.tasks {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	return nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserStore implements store.UserStore in memory.
type UserStore struct {
	db *DB
}

var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore. The existence check and the insert happen
// under one write lock.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.usersByEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	if _, exists := s.db.usersByID[user.ID]; exists {
		return store.ErrDuplicate
	}

	s.db.usersByID[user.ID] = copyUser(user)
	s.db.usersByEmail[user.Email] = user.ID
	return nil
}

// FindByID implements store.UserStore.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.usersByID[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

// FindByEmail implements store.UserStore.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	id, ok := s.db.usersByEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	return copyUser(s.db.usersByID[id]), nil
}

// List implements store.UserStore.
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.db.usersByID))
	for _, u := range s.db.usersByID {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateProfile implements store.UserStore.
func (s *UserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.usersByID[user.ID]
	if !ok {
		return store.ErrUserNotFound
	}
	existing.Name = user.Name
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateRole implements store.UserStore.
func (s *UserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.usersByID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	existing.Role = role
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete implements store.UserStore. Categories and tasks owned by the user
// are removed with it.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	existing, ok := s.db.usersByID[id]
	if !ok {
		return store.ErrUserNotFound
	}

	delete(s.db.usersByEmail, existing.Email)
	delete(s.db.usersByID, id)
	for cid, c := range s.db.categories {
		if c.UserID == id {
			delete(s.db.categories, cid)
		}
	}
	for tid, t := range s.db.tasks {
		if t.UserID == id {
			delete(s.db.tasks, tid)
		}
	}
	return nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	FindByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateProfileFn func(ctx context.Context, user *domain.User) error
	UpdateRoleFn    func(ctx context.Context, id uuid.UUID, role domain.Role) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation, keyed by email
	Users map[string]*domain.User

	mu sync.Mutex
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[string]*domain.User)}
	for _, u := range users {
		m.Users[u.Email] = u
	}
	return m
}

// Create implements store.UserStore
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

// FindByID implements store.UserStore
func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// FindByEmail implements store.UserStore
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Users[email], nil
}

// List implements store.UserStore
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}

// UpdateProfile implements store.UserStore
func (m *MockUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Users[user.Email]
	if !ok || existing.ID != user.ID {
		return store.ErrUserNotFound
	}
	existing.Name = user.Name
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

// UpdateRole implements store.UserStore
func (m *MockUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, id, role)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return store.ErrUserNotFound
}

// Delete implements store.UserStore
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, u := range m.Users {
		if u.ID == id {
			delete(m.Users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

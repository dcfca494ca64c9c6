// Package memory provides thread-safe in-memory implementations of the store
// interfaces. It is used for tests and local development; the three stores
// returned by a DB share one lock so deleting a user cascades atomically.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// DB holds all in-memory state.
type DB struct {
	mu sync.RWMutex

	usersByID    map[uuid.UUID]*domain.User
	usersByEmail map[string]uuid.UUID
	categories   map[uuid.UUID]*domain.Category
	tasks        map[uuid.UUID]*domain.Task
}

// New creates an empty in-memory database.
func New() *DB {
	return &DB{
		usersByID:    make(map[uuid.UUID]*domain.User),
		usersByEmail: make(map[string]uuid.UUID),
		categories:   make(map[uuid.UUID]*domain.Category),
		tasks:        make(map[uuid.UUID]*domain.Task),
	}
}

// Users returns the user store backed by db.
func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// Categories returns the category store backed by db.
func (db *DB) Categories() *CategoryStore { return &CategoryStore{db: db} }

// Tasks returns the task store backed by db.
func (db *DB) Tasks() *TaskStore { return &TaskStore{db: db} }

// stored values are copied in and out so callers never share pointers with the map.

func copyUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

func copyCategory(c *domain.Category) *domain.Category {
	cp := *c
	return &cp
}

func copyTask(t *domain.Task) *domain.Task {
	cp := *t
	if t.CategoryID != nil {
		id := *t.CategoryID
		cp.CategoryID = &id
	}
	if t.DueDate != nil {
		due := *t.DueDate
		cp.DueDate = &due
	}
	return &cp
}

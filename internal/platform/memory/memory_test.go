package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "Test User", "$2a$10$abcdefghijklmnopqrstuv")
	require.NoError(t, err)
	return u
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u := mustUser(t, "ada@example.com")
	require.NoError(t, users.Create(ctx, u))

	t.Run("find by email is case-insensitive", func(t *testing.T) {
		found, err := users.FindByEmail(ctx, "ADA@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("absent lookups return nil without error", func(t *testing.T) {
		found, err := users.FindByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, found)

		found, err = users.FindByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := users.Create(ctx, mustUser(t, "ada@example.com"))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		found, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		found.Role = domain.RoleAdmin

		again, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, again.Role)
	})

	t.Run("update profile and role", func(t *testing.T) {
		changed := *u
		changed.Name = "Ada Lovelace"
		changed.Role = domain.RoleAdmin
		require.NoError(t, users.UpdateProfile(ctx, &changed))

		found, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", found.Name)
		assert.Equal(t, domain.RoleUser, found.Role, "profile update must not change role")

		require.NoError(t, users.UpdateRole(ctx, u.ID, domain.RoleAdmin))
		found, err = users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, found.Role)

		assert.ErrorIs(t, users.UpdateRole(ctx, u.ID, domain.Role("root")), domain.ErrValidation)
		assert.ErrorIs(t, users.UpdateRole(ctx, uuid.New(), domain.RoleAdmin), store.ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, users.Create(ctx, mustUser(t, "grace@example.com")))
		all, err := users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestUserStoreConcurrentRegistration(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	const attempts = 20
	var created atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := domain.NewUser("race@example.com", "Racer", "hash")
			if err != nil {
				return
			}
			if users.Create(ctx, u) == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	db := New()
	owner := mustUser(t, "owner@example.com")
	other := mustUser(t, "other@example.com")
	require.NoError(t, db.Users().Create(ctx, owner))
	require.NoError(t, db.Users().Create(ctx, other))

	cat, err := domain.NewCategory(owner.ID, "Work", "")
	require.NoError(t, err)
	require.NoError(t, db.Categories().Create(ctx, cat))

	task, err := domain.NewTask(owner.ID, "Write report", "")
	require.NoError(t, err)
	task.CategoryID = &cat.ID
	require.NoError(t, db.Tasks().Create(ctx, task))

	otherTask, err := domain.NewTask(other.ID, "Other work", "")
	require.NoError(t, err)
	require.NoError(t, db.Tasks().Create(ctx, otherTask))

	require.NoError(t, db.Users().Delete(ctx, owner.ID))
	assert.ErrorIs(t, db.Users().Delete(ctx, owner.ID), store.ErrUserNotFound)

	found, err := db.Users().FindByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	_, err = db.Categories().GetByID(ctx, owner.ID, cat.ID)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
	_, err = db.Tasks().GetByID(ctx, owner.ID, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	remaining, err := db.Tasks().GetByID(ctx, other.ID, otherTask.ID)
	require.NoError(t, err)
	assert.Equal(t, otherTask.ID, remaining.ID)

	// The email can be registered again
	require.NoError(t, db.Users().Create(ctx, mustUser(t, "owner@example.com")))
}

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()
	db := New()
	alice := mustUser(t, "alice@example.com")
	bob := mustUser(t, "bob@example.com")
	require.NoError(t, db.Users().Create(ctx, alice))
	require.NoError(t, db.Users().Create(ctx, bob))
	categories := db.Categories()

	work, err := domain.NewCategory(alice.ID, "Work", "#fff")
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, work))

	t.Run("names are unique per owner", func(t *testing.T) {
		dup, err := domain.NewCategory(alice.ID, "work", "")
		require.NoError(t, err)
		assert.ErrorIs(t, categories.Create(ctx, dup), store.ErrCategoryExists)

		bobs, err := domain.NewCategory(bob.ID, "Work", "")
		require.NoError(t, err)
		assert.NoError(t, categories.Create(ctx, bobs))
	})

	t.Run("scoped to owner", func(t *testing.T) {
		_, err := categories.GetByID(ctx, bob.ID, work.ID)
		assert.ErrorIs(t, err, store.ErrCategoryNotFound)
		assert.ErrorIs(t, categories.Delete(ctx, bob.ID, work.ID), store.ErrCategoryNotFound)

		stolen := *work
		stolen.UserID = bob.ID
		stolen.Name = "Mine now"
		assert.ErrorIs(t, categories.Update(ctx, &stolen), store.ErrCategoryNotFound)

		list, err := categories.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Work", list[0].Name)
	})

	t.Run("unknown owner", func(t *testing.T) {
		orphan, err := domain.NewCategory(uuid.New(), "Orphan", "")
		require.NoError(t, err)
		assert.ErrorIs(t, categories.Create(ctx, orphan), store.ErrInvalidEntity)
	})

	t.Run("delete uncategorizes tasks", func(t *testing.T) {
		home, err := domain.NewCategory(alice.ID, "Home", "")
		require.NoError(t, err)
		require.NoError(t, categories.Create(ctx, home))

		task, err := domain.NewTask(alice.ID, "Do dishes", "")
		require.NoError(t, err)
		task.CategoryID = &home.ID
		require.NoError(t, db.Tasks().Create(ctx, task))

		require.NoError(t, categories.Delete(ctx, alice.ID, home.ID))

		found, err := db.Tasks().GetByID(ctx, alice.ID, task.ID)
		require.NoError(t, err)
		assert.Nil(t, found.CategoryID)
	})
}

func TestTaskStore(t *testing.T) {
	ctx := context.Background()
	db := New()
	alice := mustUser(t, "alice@example.com")
	bob := mustUser(t, "bob@example.com")
	require.NoError(t, db.Users().Create(ctx, alice))
	require.NoError(t, db.Users().Create(ctx, bob))
	tasks := db.Tasks()

	bobsCategory, err := domain.NewCategory(bob.ID, "Private", "")
	require.NoError(t, err)
	require.NoError(t, db.Categories().Create(ctx, bobsCategory))

	for i := 0; i < 3; i++ {
		task, err := domain.NewTask(alice.ID, fmt.Sprintf("Task %d", i), "")
		require.NoError(t, err)
		if i == 0 {
			task.Status = domain.TaskStatusCompleted
		}
		require.NoError(t, tasks.Create(ctx, task))
	}

	t.Run("filters", func(t *testing.T) {
		all, err := tasks.List(ctx, alice.ID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		done, err := tasks.List(ctx, alice.ID, store.TaskFilter{Status: domain.TaskStatusCompleted})
		require.NoError(t, err)
		assert.Len(t, done, 1)

		none, err := tasks.List(ctx, bob.ID, store.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("cannot reference another user's category", func(t *testing.T) {
		task, err := domain.NewTask(alice.ID, "Sneaky", "")
		require.NoError(t, err)
		task.CategoryID = &bobsCategory.ID
		assert.ErrorIs(t, tasks.Create(ctx, task), store.ErrCategoryNotFound)
	})

	t.Run("update and delete are scoped", func(t *testing.T) {
		all, err := tasks.List(ctx, alice.ID, store.TaskFilter{})
		require.NoError(t, err)
		target := all[0]

		stolen := *target
		stolen.UserID = bob.ID
		assert.ErrorIs(t, tasks.Update(ctx, &stolen), store.ErrTaskNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, bob.ID, target.ID), store.ErrTaskNotFound)

		target.Title = "Renamed"
		require.NoError(t, tasks.Update(ctx, target))
		found, err := tasks.GetByID(ctx, alice.ID, target.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", found.Title)

		require.NoError(t, tasks.Delete(ctx, alice.ID, target.ID))
		_, err = tasks.GetByID(ctx, alice.ID, target.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, users store.UserStore) *domain.User {
	t.Helper()
	user, err := domain.NewUser(uuid.NewString()+"@example.com", "Integration", "$2a$10$hash")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		user := createUser(t, users)

		found, err := users.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, domain.RoleUser, found.Role)

		missing, err := users.FindByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, missing)

		require.NoError(t, users.UpdateRole(ctx, user.ID, domain.RoleAdmin))
		found, err = users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, found.Role)

		assert.ErrorIs(t, users.UpdateRole(ctx, uuid.New(), domain.RoleAdmin), store.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			user := createUser(t, users)

			dup, err := domain.NewUser(user.Email, "Other", "$2a$10$hash")
			require.NoError(t, err)
			assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)
		})
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		users := postgres.NewPostgresUserStore(tx, nil)
		tasks := postgres.NewPostgresTaskStore(tx, nil)
		owner := createUser(t, users)
		stranger := createUser(t, users)

		task, err := domain.NewTask(owner.ID, "Integration task", "")
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))

		got, err := tasks.GetByID(ctx, owner.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, got.Title)

		_, err = tasks.GetByID(ctx, stranger.ID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		list, err := tasks.List(ctx, owner.ID, store.TaskFilter{Status: domain.TaskStatusPending})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		assert.ErrorIs(t, tasks.Delete(ctx, stranger.ID, task.ID), store.ErrTaskNotFound)
		assert.NoError(t, tasks.Delete(ctx, owner.ID, task.ID))
	})
}

func TestCategoryDeleteUncategorizesTasks(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	users := postgres.NewPostgresUserStore(db, nil)
	categories := postgres.NewPostgresCategoryStore(db, nil)
	tasks := postgres.NewPostgresTaskStore(db, nil)

	owner := createUser(t, users)
	t.Cleanup(func() { _ = users.Delete(context.Background(), owner.ID) })

	category, err := domain.NewCategory(owner.ID, "Errands", "")
	require.NoError(t, err)
	require.NoError(t, categories.Create(ctx, category))

	dup, err := domain.NewCategory(owner.ID, "ERRANDS", "")
	require.NoError(t, err)
	assert.ErrorIs(t, categories.Create(ctx, dup), store.ErrCategoryExists)

	task, err := domain.NewTask(owner.ID, "Buy milk", "")
	require.NoError(t, err)
	task.CategoryID = &category.ID
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, categories.Delete(ctx, owner.ID, category.ID))

	got, err := tasks.GetByID(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

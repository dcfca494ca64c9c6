package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		ConstraintName: constraint,
		ColumnName:     "test_column",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"duplicate email", pgError(uniqueViolationCode, constraintUsersEmail), store.ErrEmailExists},
		{"duplicate category", pgError(uniqueViolationCode, constraintCategoriesName), store.ErrCategoryExists},
		{"other unique", pgError(uniqueViolationCode, "something_else"), store.ErrDuplicate},
		{"task category fk", pgError(foreignKeyViolationCode, constraintTasksCategoryFK), store.ErrCategoryNotFound},
		{"owner fk", pgError(foreignKeyViolationCode, constraintTasksUserFK), store.ErrInvalidEntity},
		{"check", pgError(checkViolationCode, "users_role_check"), store.ErrInvalidEntity},
		{"not null", pgError(notNullViolationCode, ""), store.ErrInvalidEntity},
		{"wrapped pg error", fmt.Errorf("exec: %w", pgError(uniqueViolationCode, constraintUsersEmail)), store.ErrEmailExists},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tc.err), tc.want)
		})
	}

	t.Run("nil and unmapped", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
		plain := errors.New("connection reset")
		assert.Equal(t, plain, MapError(plain))
		unknown := pgError("42P01", "")
		assert.Equal(t, error(unknown), MapError(unknown))
	})
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "")))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("wrapped: %w", pgError(foreignKeyViolationCode, ""))))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("driver")), nil))
}

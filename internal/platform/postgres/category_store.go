package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const categoryColumns = "id, user_id, name, color, created_at, updated_at"

// PostgresCategoryStore implements store.CategoryStore. It holds a *sql.DB
// because Delete spans two statements in one transaction.
type PostgresCategoryStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a PostgresCategoryStore.
func NewPostgresCategoryStore(db *sql.DB, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements store.CategoryStore.
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.UserID, category.Name, category.Color, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) && !store.IsNotFoundError(mapped) {
			s.logger.Error("failed to insert category", "error", err, "category_id", category.ID)
		}
		return mapped
	}
	return nil
}

// GetByID implements store.CategoryStore.
func (s *PostgresCategoryStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrCategoryNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return category, nil
}

// List implements store.CategoryStore.
func (s *PostgresCategoryStore) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, MapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// Update implements store.CategoryStore.
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, color = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`,
		category.Name, category.Color, time.Now().UTC(), category.ID, category.UserID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrCategoryNotFound)
}

// Delete implements store.CategoryStore. Tasks filed under the category are
// uncategorized in the same transaction so their updated_at moves too.
func (s *PostgresCategoryStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		now := time.Now().UTC()
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET category_id = NULL, updated_at = $1 WHERE category_id = $2 AND user_id = $3`,
			now, id, userID,
		); err != nil {
			return MapError(err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrCategoryNotFound)
	})
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const userColumns = "id, email, name, hashed_password, role, created_at, updated_at"

// PostgresUserStore implements store.UserStore.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a PostgresUserStore over a connection or
// transaction managed by the caller. If logger is nil, a default logger will
// be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.HashedPassword, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("%w: stored role %q", store.ErrInvalidEntity, role)
	}
	u.Role = parsed
	return &u, nil
}

// Create implements store.UserStore.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Name, user.HashedPassword, string(user.Role), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if !errors.Is(mapped, store.ErrEmailExists) {
			s.logger.Error("failed to insert user", "error", err, "user_id", user.ID)
		}
		return mapped
	}
	return nil
}

// FindByID implements store.UserStore.
func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return s.findOne(row)
}

// FindByEmail implements store.UserStore.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, domain.NormalizeEmail(email))
	return s.findOne(row)
}

func (s *PostgresUserStore) findOne(row *sql.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError(err)
	}
	return user, nil
}

// List implements store.UserStore.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return users, nil
}

// UpdateProfile implements store.UserStore.
func (s *PostgresUserStore) UpdateProfile(ctx context.Context, user *domain.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = $1, updated_at = $2 WHERE id = $3`,
		user.Name, time.Now().UTC(), user.ID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// UpdateRole implements store.UserStore.
func (s *PostgresUserStore) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = $1, updated_at = $2 WHERE id = $3`,
		string(role), time.Now().UTC(), id,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore. Owned categories and tasks are removed by
// ON DELETE CASCADE.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

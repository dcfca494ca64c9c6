package testutils

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// DatabaseURLEnv names the environment variable that enables database tests.
const DatabaseURLEnv = "DATABASE_URL"

// GetTestDatabaseURL returns the database URL for integration tests, or "".
func GetTestDatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDB opens the test database and applies all migrations. The test is
// skipped when DATABASE_URL is unset; the connection is closed on cleanup.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipDatabaseTest() {
		t.Skip("Skipping database test: " + DatabaseURLEnv + " is not set")
	}

	dbURL := GetTestDatabaseURL()
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("Failed to open test database %s: %v", MaskDatabaseURL(dbURL), err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping test database %s: %v", MaskDatabaseURL(dbURL), err)
	}

	quiet := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := postgres.Migrate(ctx, db, "up", quiet); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// can share one database without seeing each other's rows.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("Warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MaskDatabaseURL hides the password of a database URL for log output.
func MaskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[unparseable database URL]"
	}
	if parsed.User == nil {
		return dbURL
	}
	if _, hasPassword := parsed.User.Password(); hasPassword {
		parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
	}
	return parsed.String()
}

// testWriter sends log output to t.Log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

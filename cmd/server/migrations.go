package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// handleMigrations executes a goose command against the embedded schema.
// It's called from run() when --migrate is set.
func handleMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("executing migrations", "command", command)
	return postgres.Migrate(ctx, db, command, logger)
}

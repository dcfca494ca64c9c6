// Package main implements the entry point for the taskboard API server: a
// multi-tenant task backend with token authentication and role-based access.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

func main() {
	configFile := pflag.String("config", "", "path to a config file (default ./config.yaml if present)")
	migrateCmd := pflag.String("migrate", "",
		fmt.Sprintf("run a migration command and exit, one of %v", postgres.MigrationCommands))
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *migrateCmd); err != nil {
		log.Printf("taskboard-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, configFile, migrateCmd string) error {
	cfg, err := loadAppConfig(configFile)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDatabase(db, l)
		return handleMigrations(ctx, db, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l, postgresStores(db, l))
	if err != nil {
		closeDatabase(db, l)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	app.db = db

	return app.Run(ctx)
}

func loadAppConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("auth configuration",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"bootstrap_admin", cfg.Auth.BootstrapAdminEmail != "")

	return cfg, nil
}

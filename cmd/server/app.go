package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/redact"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// appStores groups the persistence implementations the application runs on.
type appStores struct {
	users      store.UserStore
	categories store.CategoryStore
	tasks      store.TaskStore
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the stores are not database-backed.
	db *sql.DB

	stores appStores

	tokens    auth.TokenCodec
	passwords auth.PasswordHasher

	authService     *auth.Service
	userService     service.UserService
	categoryService service.CategoryService
	taskService     service.TaskService

	eventEmitter *events.InMemoryEventEmitter
}

// newApplication wires services on top of stores and creates the bootstrap
// admin account if one is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, stores appStores) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		stores: stores,
	}

	var err error
	app.tokens, err = auth.NewTokenCodec(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	logger.Info("token codec initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwords = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewAuditHandler(logger))

	app.authService, err = auth.NewService(stores.users, app.tokens, app.passwords, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.userService, err = service.NewUserService(stores.users, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.categoryService, err = service.NewCategoryService(stores.categories, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create category service: %w", err)
	}

	app.taskService, err = service.NewTaskService(stores.tasks, stores.categories, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if err := app.bootstrapAdmin(ctx); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// bootstrapAdmin creates the configured admin account when it does not exist.
// An existing account with that email is left untouched.
func (app *application) bootstrapAdmin(ctx context.Context) error {
	email := app.config.Auth.BootstrapAdminEmail
	if email == "" {
		return nil
	}

	existing, err := app.stores.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}
	if existing != nil {
		app.logger.Info("bootstrap admin already exists",
			"user_id", existing.ID, "role", existing.Role.String())
		return nil
	}

	password := app.config.Auth.BootstrapAdminPassword
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := app.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	admin, err := domain.NewUser(email, "Administrator", hash)
	if err != nil {
		return err
	}
	admin.Role = domain.RoleAdmin

	if err := app.stores.users.Create(ctx, admin); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Created concurrently by another instance.
			return nil
		}
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	app.logger.Info("bootstrap admin created",
		"user_id", admin.ID, "email", redact.String(admin.Email))
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("application shutdown completed")
}

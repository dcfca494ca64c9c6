package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserService manages accounts after registration.
type UserService interface {
	// GetUser returns store.ErrUserNotFound if the account does not exist.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile changes the display name.
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error)

	// SetRole changes the role of userID on behalf of actorID.
	SetRole(ctx context.Context, actorID, userID uuid.UUID, role domain.Role) (*domain.User, error)

	// DeleteUser removes the account and everything it owns.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userServiceImpl struct {
	users  store.UserStore
	events events.EventEmitter
	logger *slog.Logger
}

// NewUserService creates a UserService. emitter may be nil.
func NewUserService(users store.UserStore, emitter events.EventEmitter, log *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		events: emitter,
		logger: log.With(slog.String("component", "user_service")),
	}, nil
}

func (s *userServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// GetUser implements UserService.
func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log(ctx).Error("failed to retrieve user", "error", err, "user_id", userID)
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	if user == nil {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// ListUsers implements UserService.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list users", "error", err)
		return nil, NewServiceError("user", "list", "failed to list users", err)
	}
	return users, nil
}

// UpdateProfile implements UserService. The complete user is loaded first and
// only the name is changed before validation.
func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	name string,
) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(name)
	user.UpdatedAt = time.Now().UTC()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		s.log(ctx).Error("failed to update profile", "error", err, "user_id", userID)
		return nil, NewServiceError("user", "update_profile", "failed to update profile", err)
	}

	s.log(ctx).Info("profile updated", "user_id", userID)
	return user, nil
}

// SetRole implements UserService.
func (s *userServiceImpl) SetRole(
	ctx context.Context,
	actorID, userID uuid.UUID,
	role domain.Role,
) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if actorID == userID {
		return nil, ErrOwnRoleChange
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	previous := user.Role
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		s.log(ctx).Error("failed to update role", "error", err, "user_id", userID)
		return nil, NewServiceError("user", "set_role", "failed to update role", err)
	}
	user.Role = role

	s.log(ctx).Info("role changed",
		"user_id", userID,
		"actor_id", actorID,
		"old_role", previous,
		"new_role", role)
	s.emit(ctx, events.NewAccountEvent(events.AccountRoleChanged, userID, user.Email).
		WithDetail("old_role", previous.String()).
		WithDetail("new_role", role.String()).
		WithDetail("actor_id", actorID.String()))
	return user, nil
}

// DeleteUser implements UserService.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.log(ctx).Debug("attempted to delete non-existent user", "user_id", userID)
			return err
		}
		s.log(ctx).Error("failed to delete user", "error", err, "user_id", userID)
		return NewServiceError("user", "delete", "failed to delete user", err)
	}

	s.log(ctx).Info("user deleted", "user_id", userID)
	s.emit(ctx, events.NewAccountEvent(events.AccountDeleted, userID, user.Email))
	return nil
}

func (s *userServiceImpl) emit(ctx context.Context, event *events.AccountEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Warn("failed to emit account event", "error", err, "event_type", event.Type)
	}
}

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskInput holds the fields of a new task. Empty Status and Priority take the
// domain defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	CategoryID  *uuid.UUID
	DueDate     *time.Time
}

// TaskUpdate holds the fields to change. Nil fields are left as they are.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	CategoryID  *uuid.UUID
	DueDate     *time.Time
}

// TaskService provides task operations scoped to an owner.
type TaskService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, update TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
}

type taskServiceImpl struct {
	tasks      store.TaskStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, categories store.CategoryStore, log *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &taskServiceImpl{
		tasks:      tasks,
		categories: categories,
		logger:     log.With(slog.String("component", "task_service")),
	}, nil
}

// checkCategory verifies that categoryID, if set, belongs to userID.
func (s *taskServiceImpl) checkCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, userID, *categoryID); err != nil {
		if expected(err) {
			return err
		}
		return NewServiceError("task", "check_category", "failed to retrieve category", err)
	}
	return nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(userID, input.Title, input.Description)
	if err != nil {
		return nil, err
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.CategoryID = input.CategoryID
	task.DueDate = input.DueDate
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, task.CategoryID); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if expected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create task",
			"error", err, "user_id", userID)
		return nil, NewServiceError("task", "create", "failed to save task", err)
	}
	return task, nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		return nil, NewServiceError("task", "get", "failed to retrieve task", err)
	}
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidTaskStatus
	}
	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		return nil, NewServiceError("task", "list", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		task.Status = *update.Status
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.CategoryID != nil {
		task.CategoryID = update.CategoryID
	}
	if update.DueDate != nil {
		task.DueDate = update.DueDate
	}
	task.UpdatedAt = time.Now().UTC()
	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, update.CategoryID); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if expected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			"error", err, "task_id", taskID)
		return nil, NewServiceError("task", "update", "failed to update task", err)
	}
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if expected(err) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			"error", err, "task_id", taskID)
		return NewServiceError("task", "delete", "failed to delete task", err)
	}
	return nil
}

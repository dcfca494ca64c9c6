package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task validation errors
var (
	ErrEmptyTaskID       = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskUserID   = fmt.Errorf("%w: task user ID cannot be empty", ErrValidation)
	ErrTaskTitleTooShort = fmt.Errorf("%w: task title must be at least 3 characters long", ErrValidation)
	ErrInvalidTaskStatus = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrInvalidPriority   = fmt.Errorf("%w: invalid task priority", ErrValidation)
)

// Task is a unit of work owned by a single user, optionally filed under one of
// that user's categories.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a pending, medium-priority Task owned by userID.
func NewTask(userID uuid.UUID, title, description string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusPending,
		Priority:    TaskPriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}
	if len(t.Title) < 3 {
		return ErrTaskTitleTooShort
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

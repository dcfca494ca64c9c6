package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"     validate:"required,max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// AccessToken is the bearer token for subsequent requests.
	AccessToken string `json:"access_token"`

	// ExpiresAt is the RFC 3339 time at which the token stops being accepted.
	ExpiresAt string `json:"expires_at"`

	User domain.Profile `json:"user"`
}

// UpdateProfileRequest defines the payload for PATCH /users/me.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SetRoleRequest defines the payload for PUT /admin/users/{id}/role.
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CategoryRequest is the payload for creating a category. Color defaults to
// domain.DefaultCategoryColor.
type CategoryRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateCategoryRequest changes the fields that are present.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=2,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// CategoryResponse is the JSON view of a category.
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskRequest is the payload for creating a task.
type TaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	CategoryID  *uuid.UUID `json:"category_id"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest changes the fields that are present.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	CategoryID  *uuid.UUID `json:"category_id"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse is the JSON view of a task.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func categoryToResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		CategoryID:  task.CategoryID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func optionalString[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3B82F6"

// Category validation errors
var (
	ErrEmptyCategoryID      = fmt.Errorf("%w: category ID cannot be empty", ErrValidation)
	ErrEmptyCategoryUserID  = fmt.Errorf("%w: category user ID cannot be empty", ErrValidation)
	ErrCategoryNameTooShort = fmt.Errorf("%w: category name must be at least 2 characters long", ErrValidation)
	ErrInvalidCategoryColor = fmt.Errorf(
		"%w: color must be a valid hex color code (e.g., #3B82F6)",
		ErrValidation,
	)
)

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// Category groups a user's tasks. Names are unique per owner.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates a Category owned by userID. An empty color falls back to
// DefaultCategoryColor.
func NewCategory(userID uuid.UUID, name, color string) (*Category, error) {
	if color == "" {
		color = DefaultCategoryColor
	}
	now := time.Now().UTC()
	category := &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if c.UserID == uuid.Nil {
		return ErrEmptyCategoryUserID
	}
	if len(c.Name) < 2 {
		return ErrCategoryNameTooShort
	}
	if !hexColorPattern.MatchString(c.Color) {
		return ErrInvalidCategoryColor
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CategoryUpdate holds the fields to change. Nil fields are left as they are.
type CategoryUpdate struct {
	Name  *string
	Color *string
}

// CategoryService provides category operations scoped to an owner.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID uuid.UUID, name, color string) (*domain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID uuid.UUID, update CategoryUpdate) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categories store.CategoryStore, log *slog.Logger) (CategoryService, error) {
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &categoryServiceImpl{
		categories: categories,
		logger:     log.With(slog.String("component", "category_service")),
	}, nil
}

// expected reports whether err is a condition the caller should see as-is.
func expected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err)
}

// CreateCategory implements CategoryService.
func (s *categoryServiceImpl) CreateCategory(
	ctx context.Context,
	userID uuid.UUID,
	name, color string,
) (*domain.Category, error) {
	category, err := domain.NewCategory(userID, name, color)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if expected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create category",
			"error", err, "user_id", userID)
		return nil, NewServiceError("category", "create", "failed to save category", err)
	}
	return category, nil
}

// GetCategory implements CategoryService.
func (s *categoryServiceImpl) GetCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if expected(err) {
			return nil, err
		}
		return nil, NewServiceError("category", "get", "failed to retrieve category", err)
	}
	return category, nil
}

// ListCategories implements CategoryService.
func (s *categoryServiceImpl) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx, userID)
	if err != nil {
		return nil, NewServiceError("category", "list", "failed to list categories", err)
	}
	return categories, nil
}

// UpdateCategory implements CategoryService.
func (s *categoryServiceImpl) UpdateCategory(
	ctx context.Context,
	userID, categoryID uuid.UUID,
	update CategoryUpdate,
) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		category.Name = strings.TrimSpace(*update.Name)
	}
	if update.Color != nil {
		category.Color = *update.Color
	}
	category.UpdatedAt = time.Now().UTC()
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		if expected(err) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update category",
			"error", err, "category_id", categoryID)
		return nil, NewServiceError("category", "update", "failed to update category", err)
	}
	return category, nil
}

// DeleteCategory implements CategoryService.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uuid.UUID) error {
	if err := s.categories.Delete(ctx, userID, categoryID); err != nil {
		if expected(err) {
			return err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete category",
			"error", err, "category_id", categoryID)
		return NewServiceError("category", "delete", "failed to delete category", err)
	}
	return nil
}

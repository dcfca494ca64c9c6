package api

import (
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// CategoryHandler serves the principal's categories.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), principal.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	resp := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp = append(resp, categoryToResponse(category))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreateCategory handles POST /categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), principal.ID, req.Name, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, categoryToResponse(category))
}

// GetCategory handles GET /categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	principal, categoryID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), principal.ID, categoryID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category))
}

// UpdateCategory handles PUT /categories/{id}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	principal, categoryID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), principal.ID, categoryID, service.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category))
}

// DeleteCategory handles DELETE /categories/{id}. Tasks in the category are
// kept and become uncategorized.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	principal, categoryID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), principal.ID, categoryID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

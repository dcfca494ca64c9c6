package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service"
)

// UserHandler serves account endpoints. Authorization is enforced by the
// middleware mounted in front of each route.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(principal))
}

// UpdateMe handles PATCH /users/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), principal.ID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, userID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	logger.FromContext(r.Context()).Info("account deleted",
		slog.String("user_id", userID.String()),
		slog.String("actor_id", principal.ID.String()))

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, userToResponse(user))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SetRole handles PUT /admin/users/{id}/role.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	principal, userID, ok := handlePrincipalAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SetRoleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.SetRole(r.Context(), principal.ID, userID, role)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change role")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

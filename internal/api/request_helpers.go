package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// GetPathUUID extracts a UUID from the URL path parameters.
// A missing or malformed parameter yields a validation error.
func GetPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// principalFromRequest returns the principal attached by the authentication
// middleware, writing a 401 when it is absent.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	principal, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("principal not found in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return nil, false
	}
	return principal, true
}

// handlePrincipalAndPathUUID extracts both the principal and a UUID path
// parameter, writing an error response if either is unavailable.
func handlePrincipalAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (*domain.User, uuid.UUID, bool) {
	principal, ok := principalFromRequest(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}

	pathID, err := GetPathUUID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName))
		HandleAPIError(w, r, err, "")
		return nil, uuid.Nil, false
	}

	return principal, pathID, true
}

// decodeAndValidate parses the JSON body into req and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

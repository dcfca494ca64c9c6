package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Client-facing messages for authentication and authorization failures.
const (
	MsgMissingToken       = "Please provide authentication token."
	MsgExpiredToken       = "Your session has expired. Please login again."
	MsgInvalidToken       = "Invalid token. Please login again."
	MsgInvalidCredentials = "Invalid credentials"
	MsgForbidden          = "You do not have permission to perform this action"
	MsgInternal           = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, auth.ErrDuplicateIdentity),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternal
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return MsgMissingToken
	case errors.Is(err, auth.ErrExpiredToken):
		return MsgExpiredToken
	case errors.Is(err, auth.ErrInvalidToken):
		return MsgInvalidToken
	case errors.Is(err, auth.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, auth.ErrForbidden):
		return MsgForbidden

	case errors.Is(err, auth.ErrDuplicateIdentity),
		errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrCategoryExists):
		return "Category with this name already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return domainValidationMessage(err)
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid request format"

	default:
		return MsgInternal
	}
}

// domainValidationMessage extracts the domain-authored part of a validation
// error. Those messages are written for clients; anything wrapped around them
// is not.
func domainValidationMessage(err error) string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return "Invalid " + vErr.Field + ": " + vErr.Message
	}

	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return "Validation error: " + msg[i+len(prefix):]
	}
	return "Validation error"
}

// SanitizeValidationError reports the first failing field of a validator
// error without echoing the submitted value.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "hexcolor":
		return "invalid color"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and sanitized message for err. For
// unexpected errors fallback replaces the generic message when set.
// Authentication and authorization failures are logged at WARN.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

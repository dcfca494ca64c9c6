package service

import (
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Service-level rule violations. They wrap domain.ErrValidation so the API
// layer reports them as bad requests.
var (
	// ErrOwnRoleChange is returned when an admin tries to change their own role.
	ErrOwnRoleChange = fmt.Errorf("%w: cannot change your own role", domain.ErrValidation)
)

// ServiceError adds the failing operation to an unexpected error.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

package auth

import (
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// CheckRole allows role only if it is one of required. An empty required set
// denies every role.
func CheckRole(role domain.Role, required ...domain.Role) error {
	if slices.Contains(required, role) {
		return nil
	}
	return ErrForbidden
}

// CheckSelfOrRole allows the principal to act on targetID when it is its own
// account or when it holds one of roles.
func CheckSelfOrRole(principal *domain.User, targetID uuid.UUID, roles ...domain.Role) error {
	if principal == nil {
		return ErrForbidden
	}
	if principal.ID == targetID {
		return nil
	}
	return CheckRole(principal.Role, roles...)
}

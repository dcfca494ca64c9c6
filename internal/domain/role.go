package domain

import "fmt"

// Role is the closed set of privilege levels a user can hold.
type Role string

// Known roles. RoleUser is the least-privileged value and the default.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts s into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", NewValidationError("role", fmt.Sprintf("must be one of %q, %q", RoleUser, RoleAdmin), ErrValidation)
	}
	return r, nil
}

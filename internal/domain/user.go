package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrEmptyName           = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrNameTooLong         = fmt.Errorf("%w: name must be at most 100 characters long", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
	ErrInvalidRole         = fmt.Errorf("%w: invalid role", ErrValidation)
)

// MaxNameLength bounds the display name of a user.
const MaxNameLength = 100

var emailValidator = validator.New()

// User represents a registered principal. The password hash is never serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Profile is the outward-facing view of a User.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// NewUser creates a User with the least-privileged role. The caller hashes the
// password; NewUser only stores the digest.
func NewUser(email, name, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Email:          NormalizeEmail(email),
		Name:           strings.TrimSpace(name),
		HashedPassword: hashedPassword,
		Role:           RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if err := emailValidator.Var(u.Email, "email"); err != nil {
		return ErrInvalidEmail
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

// NormalizeEmail trims and lower-cases an email so that uniqueness and lookups
// do not depend on the caller's casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

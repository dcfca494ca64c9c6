package mocks

import (
	"errors"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by MockPasswordHasher.Compare by default.
var ErrPasswordMismatch = errors.New("password mismatch")

const mockHashPrefix = "hashed:"

// MockPasswordHasher implements auth.PasswordHasher without bcrypt's cost.
// By default Hash prefixes the password and Compare checks that prefix.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCalls counts Compare invocations.
	CompareCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockHashPrefix + password, nil
}

// Compare implements auth.PasswordHasher
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalls++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if !strings.HasPrefix(hashedPassword, mockHashPrefix) || hashedPassword[len(mockHashPrefix):] != password {
		return ErrPasswordMismatch
	}
	return nil
}

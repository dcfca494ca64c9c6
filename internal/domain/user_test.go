package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("  Alice@Example.COM ", " Alice ", "$2a$10$hash")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, RoleUser, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	})

	tests := []struct {
		name    string
		email   string
		uname   string
		hash    string
		wantErr error
	}{
		{"empty email", "", "Alice", "hash", ErrEmptyEmail},
		{"invalid email", "not-an-email", "Alice", "hash", ErrInvalidEmail},
		{"empty name", "a@example.com", "   ", "hash", ErrEmptyName},
		{"long name", "a@example.com", strings.Repeat("n", MaxNameLength+1), "hash", ErrNameTooLong},
		{"empty hash", "a@example.com", "Alice", "", ErrEmptyHashedPassword},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := NewUser(tt.email, tt.uname, tt.hash)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestUserValidateRole(t *testing.T) {
	t.Parallel()

	user, err := NewUser("a@example.com", "Alice", "hash")
	require.NoError(t, err)

	user.Role = Role("superuser")
	assert.ErrorIs(t, user.Validate(), ErrInvalidRole)

	user.Role = RoleAdmin
	assert.NoError(t, user.Validate())
}

func TestUserJSONOmitsHash(t *testing.T) {
	t.Parallel()

	user, err := NewUser("a@example.com", "Alice", "$2a$10$secretdigest")
	require.NoError(t, err)

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secretdigest")

	data, err = json.Marshal(user.Profile())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secretdigest")
	assert.JSONEq(t,
		`{"id":"`+user.ID.String()+`","email":"a@example.com","name":"Alice","role":"user"}`,
		string(data))
}

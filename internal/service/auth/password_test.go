package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
	assert.Error(t, hasher.Compare(hash, "correct horse battery!"))
	assert.Error(t, hasher.Compare("not-a-hash", "correct horse battery"))

	t.Run("salts each hash", func(t *testing.T) {
		again, err := hasher.Hash("correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, hash, again)
	})
}

func TestNewBcryptHasherCostBounds(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", 1, bcrypt.DefaultCost},
		{"above maximum", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
		{"minimum", bcrypt.MinCost, bcrypt.MinCost},
		{"explicit", 12, 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewBcryptHasher(tc.cost).cost)
		})
	}
}

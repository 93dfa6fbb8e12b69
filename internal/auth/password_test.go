package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendwave/connect/internal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := auth.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.True(t, auth.CheckPassword("correct horse battery staple", hash))
		assert.False(t, auth.CheckPassword("wrong password", hash))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := auth.HashPassword("password123")
		require.NoError(t, err)
		h2, err := auth.HashPassword("password123")
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)
		assert.True(t, auth.CheckPassword("password123", h1))
		assert.True(t, auth.CheckPassword("password123", h2))
	})

	t.Run("check against garbage hash fails", func(t *testing.T) {
		assert.False(t, auth.CheckPassword("password123", "not-a-bcrypt-hash"))
	})
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Run("hash and compare", func(t *testing.T) {
		h := BcryptHasher{}

		hash, err := h.Hash("correct-password")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		require.NotContains(t, hash, "correct-password", "hash must not contain the password")

		require.NoError(t, h.Compare(hash, "correct-password"))
		require.Error(t, h.Compare(hash, "wrong-password"))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h := BcryptHasher{}

		first, err := h.Hash("password")
		require.NoError(t, err)
		second, err := h.Hash("password")
		require.NoError(t, err)

		require.NotEqual(t, first, second, "salt must be embedded per hash")
	})

	t.Run("custom cost", func(t *testing.T) {
		h := BcryptHasher{Cost: bcrypt.MinCost}

		hash, err := h.Hash("password")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		require.Equal(t, bcrypt.MinCost, cost)
	})
}

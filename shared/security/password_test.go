package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces an argon2id encoded hash", func(t *testing.T) {
		hash, err := HashPassword("pw1")
		require.NoError(t, err)
		assert.NotEqual(t, "pw1", hash)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := HashPassword("same-password")
		require.NoError(t, err)
		second, err := HashPassword("same-password")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		_, err := HashPassword("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("correct horse", "not-a-hash")
	assert.Error(t, err)
}

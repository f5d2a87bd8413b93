package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw")
	require.NoError(t, err)
	require.NotEqual(t, "pw", hash)

	ok, err := VerifyPassword("pw", hash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	t.Parallel()

	_, err := VerifyPassword("pw", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw")
	require.NoError(t, err)

	second, err := HashPassword("pw")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

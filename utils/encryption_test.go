package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	password := "Sup3rSecret!"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, password, hash)

	require.True(t, CheckPasswordHash(password, hash))
	require.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		require.Regexp(t, `^[0-9]{6}$`, code)
	}
}

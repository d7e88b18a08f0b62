package utils_test

import (
	"testing"

	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, utils.CheckPasswordHash("secret-password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))
}

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, s, 64)

	other, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)

	_, err = utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestGenerateDigitCode(t *testing.T) {
	code, err := utils.GenerateDigitCode(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	hash := utils.HashRefreshToken("some-refresh-token")
	assert.Len(t, hash, 64)
	assert.True(t, utils.CompareRefreshTokenHash("some-refresh-token", hash))
	assert.False(t, utils.CompareRefreshTokenHash("another-token", hash))
}

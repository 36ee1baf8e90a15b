package utils

import (
	"testing"

	"github.com/BinLe1988/tweet-content-filter/configs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	InitJWT(configs.Auth{Secret: "s3cret", ExpiresIn: 1})

	token, err := GenerateToken("dashboard")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.ClientID)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	InitJWT(configs.Auth{Secret: "one", ExpiresIn: 1})
	token, err := GenerateToken("dashboard")
	require.NoError(t, err)

	InitJWT(configs.Auth{Secret: "two", ExpiresIn: 1})
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	InitJWT(configs.Auth{Secret: "s3cret", ExpiresIn: -1})
	token, err := GenerateToken("dashboard")
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	InitJWT(configs.Auth{})
	_, err := GenerateToken("dashboard")
	assert.Error(t, err)
}

func TestHashAndCheckSecret(t *testing.T) {
	hash, err := HashSecret("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckSecret(hash, "hunter2"))
	assert.False(t, CheckSecret(hash, "hunter3"))
	assert.False(t, CheckSecret("not-a-hash", "hunter2"))
}

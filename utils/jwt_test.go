package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	ConfigureJWT("unit-test-secret", time.Hour)

	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestParseTokenRejectsOtherSecret(t *testing.T) {
	ConfigureJWT("first-secret", time.Hour)
	token, err := GenerateToken(1, "operator")
	require.NoError(t, err)

	ConfigureJWT("second-secret", 0)
	_, err = ParseToken(token)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-12-25")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("25/12/2023")
	assert.Error(t, err)

	today, err := ParseDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), today, time.Minute)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", hash)
	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "secret124"))
}

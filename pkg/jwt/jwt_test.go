package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, claims, err := GenerateToken(secret, 42, TypeAccess, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := ParseToken(secret, TypeAccess, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), parsed.UserID)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(secret, 1, TypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TypeAccess, token)
	require.Error(t, err)
}

func TestParseRejectsWrongType(t *testing.T) {
	token, _, err := GenerateToken(secret, 1, "refresh", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, token)
	require.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := GenerateToken(secret, 1, TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, token)
	require.Error(t, err)
}

package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("super-secret", time.Hour, 42, "alice")
	require.NoError(t, err)

	claims, err := ParseToken("super-secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("super-secret", -time.Second, 42, "alice")
	require.NoError(t, err)

	_, err = ParseToken("super-secret", token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("right-secret", time.Hour, 42, "alice")
	require.NoError(t, err)

	_, err = ParseToken("wrong-secret", token)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("super-secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseToken_ValidUntilExpiry(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("super-secret", 2*time.Second, 7, "bob")
	require.NoError(t, err)

	claims, err := ParseToken("super-secret", token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), claims.ExpiresAt.Time, time.Second)
}

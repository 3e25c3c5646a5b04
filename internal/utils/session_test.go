package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, "manager@pharmacy.test", 30)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	id, email, err := ParseSessionToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "manager@pharmacy.test", email)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, "manager@pharmacy.test", 30)
	require.NoError(t, err)

	_, _, err = ParseSessionToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("secret", 42, "manager@pharmacy.test", -5)
	require.NoError(t, err)

	_, _, err = ParseSessionToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, _, err := ParseSessionToken("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse", 4)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))
}

package cryptox

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected a bcrypt hash, got %q", hash)

	assert.True(t, CheckPassword("secret1", hash))
	assert.False(t, CheckPassword("secret2", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ by salt")
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	assert.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	assert.False(t, CheckPassword("anything", ""))
}

func TestNewResetToken(t *testing.T) {
	t.Parallel()

	plain, digest, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, plain, 2*resetTokenBytes)
	_, err = hex.DecodeString(plain)
	assert.NoError(t, err, "plaintext token must be hex")

	assert.Len(t, digest, 64, "sha256 hex digest is 64 characters")
	assert.NotEqual(t, plain, digest)
	assert.Equal(t, HashResetToken(plain), digest, "stored digest must be derivable from the plaintext")
}

func TestHashResetToken_Deterministic(t *testing.T) {
	t.Parallel()

	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}

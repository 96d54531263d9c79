package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("qwerty")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "qwerty", digest)

	assert.True(t, hasher.Verify("qwerty", digest))
	assert.False(t, hasher.Verify("not-qwerty", digest))
}

func TestHashProducesDistinctDigests(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("qwerty")
	require.NoError(t, err)
	second, err := hasher.Hash("qwerty")
	require.NoError(t, err)

	// bcrypt salts every digest
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("qwerty", first))
	assert.True(t, hasher.Verify("qwerty", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher()

	assert.False(t, hasher.Verify("qwerty", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("qwerty", ""))
}

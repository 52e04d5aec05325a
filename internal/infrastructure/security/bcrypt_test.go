package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	require.NotEqual(t, "Abcdef1!", hash)

	ok, err := h.Verify("Abcdef1!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok, "mismatch is not an error, just false")
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	b, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "equal hashes would mean a fixed salt")
}

func TestVerifyMalformedHashIsError(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	ok, err := h.Verify("Abcdef1!", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err, "a hash that cannot be compared is an internal failure")
}

func TestCostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(99)
	hash, err := h.Hash("Abcdef1!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)
}

package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "secure-store-hub/internal/domain/errors"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	h := NewHasher("unit-test-secret")

	encoded, err := h.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.VerifyPassword(encoded, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.VerifyPassword(encoded, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h := NewHasher("unit-test-secret")

	first, err := h.HashPassword("same plaintext")
	require.NoError(t, err)
	second, err := h.HashPassword("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify.
	for _, encoded := range []string{first, second} {
		ok, err := h.VerifyPassword(encoded, "same plaintext")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHashPassword_SecretBindsHash(t *testing.T) {
	first := NewHasher("secret-one")
	second := NewHasher("secret-two")

	encoded, err := first.HashPassword("password123")
	require.NoError(t, err)

	// A hash produced under one secret never verifies under another.
	ok, err := second.VerifyPassword(encoded, "password123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_NoSecret(t *testing.T) {
	h := NewHasher("")

	_, err := h.HashPassword("password123")
	assert.ErrorIs(t, err, domainerrors.ErrNoCryptoSecret)

	_, err = h.VerifyPassword("$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA", "password123")
	assert.ErrorIs(t, err, domainerrors.ErrNoCryptoSecret)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	h := NewHasher("unit-test-secret")

	malformed := []string{
		"",
		"not a hash at all",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",  // wrong variant
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA", // wrong version
		"$argon2id$v=19$m=65536,t=3,p=2$!!$aGFzaA",     // bad salt encoding
		"$argon2id$v=19$m=65536$c2FsdA$aGFzaA",         // missing params
	}
	for _, encoded := range malformed {
		ok, err := h.VerifyPassword(encoded, "password123")
		require.NoError(t, err, "malformed hash %q should not error", encoded)
		assert.False(t, ok, "malformed hash %q should not verify", encoded)
	}
}

func TestHashPassword_EncodedParameters(t *testing.T) {
	h := NewHasher("unit-test-secret")

	encoded, err := h.HashPassword("password123")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, "m=65536,t=3,p=2", parts[3])
}

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncryptor(t *testing.T) {
	t.Run("generates a key when none provided", func(t *testing.T) {
		enc, err := NewEncryptor("")
		require.NoError(t, err)
		assert.NotNil(t, enc.identity)
		assert.NotNil(t, enc.recipient)
	})

	t.Run("accepts a generated key", func(t *testing.T) {
		key, err := GenerateKey()
		require.NoError(t, err)

		enc, err := NewEncryptor(key)
		require.NoError(t, err)
		assert.NotNil(t, enc)
	})

	t.Run("rejects a malformed key", func(t *testing.T) {
		_, err := NewEncryptor("invalid-key-format")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing identity")
	})
}

func TestEncryptDecrypt(t *testing.T) {
	enc, err := NewEncryptor("")
	require.NoError(t, err)

	plaintext := []byte("queued credential payload")

	ciphertext, err := enc.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := enc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)

	t.Run("fresh nonce per message", func(t *testing.T) {
		again, err := enc.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, ciphertext, again)
	})

	t.Run("garbage ciphertext rejected", func(t *testing.T) {
		_, err := enc.Decrypt([]byte("not valid ciphertext"))
		assert.Error(t, err)
	})

	t.Run("wrong key cannot decrypt", func(t *testing.T) {
		other, err := NewEncryptor("")
		require.NoError(t, err)

		_, err = other.Decrypt(ciphertext)
		assert.Error(t, err)
	})
}

// Temp passwords are sealed with EncryptString before the welcome email
// task is enqueued, and unsealed by the worker.
func TestEncryptStringRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	server, err := NewEncryptor(key)
	require.NoError(t, err)
	worker, err := NewEncryptor(key)
	require.NoError(t, err)

	tempPassword, err := GenerateRandomString(12)
	require.NoError(t, err)

	sealed, err := server.EncryptString(tempPassword)
	require.NoError(t, err)
	assert.NotContains(t, sealed, " ")

	unsealed, err := worker.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, tempPassword, unsealed)
}

func TestDecryptString_BadInput(t *testing.T) {
	enc, err := NewEncryptor("")
	require.NoError(t, err)

	_, err = enc.DecryptString("not valid base64!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding base64")

	// Valid base64 that is not age ciphertext
	_, err = enc.DecryptString("SGVsbG8gV29ybGQ=")
	assert.Error(t, err)
}

func TestPublicKey(t *testing.T) {
	enc, err := NewEncryptor("")
	require.NoError(t, err)
	assert.Contains(t, enc.PublicKey(), "age1")
}

func TestGenerateRandomString(t *testing.T) {
	for _, size := range []int{8, 12, 32, 64} {
		s1, err := GenerateRandomString(size)
		require.NoError(t, err)
		assert.Len(t, s1, size)

		s2, err := GenerateRandomString(size)
		require.NoError(t, err)
		assert.NotEqual(t, s1, s2)
	}
}

func TestGenerateRandomBytes(t *testing.T) {
	b, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, b, 32)

	b2, err := GenerateRandomBytes(32)
	require.NoError(t, err)
	assert.NotEqual(t, b, b2)

	empty, err := GenerateRandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

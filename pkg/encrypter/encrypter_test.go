package encrypter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	for _, key := range []string{"0123456789abcdef", "a passphrase of arbitrary length"} {
		e, err := New(key)
		require.NoError(t, err)

		sealed, err := e.Encrypt("hunter2")
		require.NoError(t, err)
		assert.NotContains(t, sealed, "hunter2")

		plain, err := e.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", plain)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	e, err := New("site-credentials-key")
	require.NoError(t, err)

	sealed, err := e.EncryptJSON(map[string]string{"username": "agent", "password": "pw"})
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, e.DecryptJSON(sealed, &out))
	assert.Equal(t, "pw", out["password"])
}

func TestDecrypt_WrongKey(t *testing.T) {
	a, _ := New("key-one-key-one!")
	b, _ := New("key-two-key-two!")

	sealed, err := a.Encrypt("secret")
	require.NoError(t, err)

	_, err = b.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestNew_EmptyKey(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

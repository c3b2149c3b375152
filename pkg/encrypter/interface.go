package encrypter

// Encrypter seals and opens secrets at rest.
// Implementations are safe for concurrent use.
type Encrypter interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	EncryptJSON(v any) (string, error)
	DecryptJSON(ciphertext string, v any) error
}

// New creates a new Encrypter. A key of 16, 24, or 32 bytes is used as the AES key
// as is; any other non-empty passphrase is stretched to 32 bytes with HKDF-SHA256.
func New(key string) (Encrypter, error) {
	k, err := deriveKey(key)
	if err != nil {
		return nil, err
	}
	return &implEncrypter{key: k}, nil
}

package encrypter

import "errors"

var (
	ErrEmptyKey           = errors.New("encryption key must not be empty")
	ErrCiphertextTooShort = errors.New("ciphertext is too short")
	ErrDecryptionFailed   = errors.New("decryption failed: invalid ciphertext or key")
)

package secrets

import "errors"

var (
	ErrInvalidAppKey       = errors.New("secrets: app key must be 32 bytes")
	ErrInvalidWorkspaceKey = errors.New("secrets: workspace key must be 32 bytes")
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
	ErrEncryptionFailed    = errors.New("secrets: encryption failed")
	ErrDecryptionFailed    = errors.New("secrets: decryption failed")
	ErrInvalidCiphertext   = errors.New("secrets: invalid ciphertext")
)

package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the required length of both the app key and the workspace key.
const KeySize = 32

var hkdfInfo = []byte("tenantmail/secrets/v1")

// GenerateKey returns a random 32-byte key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// EncryptString encrypts plaintext and returns base64(nonce || ciphertext).
func EncryptString(appKey, workspaceKey []byte, plaintext string) (string, error) {
	sealed, err := EncryptBytes(appKey, workspaceKey, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString reverses EncryptString.
func DecryptString(appKey, workspaceKey []byte, ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	plain, err := DecryptBytes(appKey, workspaceKey, sealed)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// EncryptBytes encrypts data with AES-256-GCM and returns nonce || ciphertext.
func EncryptBytes(appKey, workspaceKey, data []byte) ([]byte, error) {
	gcm, err := newGCM(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return gcm.Seal(nonce, nonce, data, nil), nil
}

// DecryptBytes reverses EncryptBytes. Tampered input fails with ErrDecryptionFailed.
func DecryptBytes(appKey, workspaceKey, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}

	ns := gcm.NonceSize()
	if len(sealed) < ns+gcm.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	plain, err := gcm.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plain, nil
}

func newGCM(appKey, workspaceKey []byte) (cipher.AEAD, error) {
	if len(appKey) != KeySize {
		return nil, ErrInvalidAppKey
	}
	if len(workspaceKey) != KeySize {
		return nil, ErrInvalidWorkspaceKey
	}

	key, err := deriveKey(appKey, workspaceKey)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return gcm, nil
}

// deriveKey runs HKDF-SHA256 with the app key as secret and the workspace key as salt.
func deriveKey(appKey, workspaceKey []byte) ([]byte, error) {
	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, appKey, workspaceKey, hkdfInfo)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

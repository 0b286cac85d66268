// Package secrets provides AES-256-GCM encryption with compound key derivation for secure data storage.
//
// This package combines application and workspace keys using HKDF (HMAC-based Key Derivation Function)
// to create encryption keys. Both string and byte-level operations are supported, and derived keys are
// zeroed after use.
//
// # Security Model
//
// The package implements a compound key system where:
//   - Application key: Global secret shared across the application
//   - Workspace key: Tenant/workspace-specific secret
//   - Derived key: HKDF-derived encryption key combining both inputs
//
// This design provides tenant isolation while maintaining operational simplicity.
//
// # Features
//
// - AES-256-GCM authenticated encryption
// - HKDF-based compound key derivation
// - Automatic memory cleanup of sensitive data
// - Base64 encoding for string operations
// - Cryptographically secure random key generation
//
// # Usage
//
// Key generation:
//
//	// Generate cryptographically secure keys
//	appKey, err := secrets.GenerateKey()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	workspaceKey, err := secrets.GenerateKey()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Keys are 32 bytes (256 bits) each
//	fmt.Printf("App key length: %d bytes\n", len(appKey))
//
// String encryption (most common):
//
//	plaintext := "sensitive user data"
//
//	// Encrypt to base64-encoded string
//	ciphertext, err := secrets.EncryptString(appKey, workspaceKey, plaintext)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Decrypt back to original string
//	decrypted, err := secrets.DecryptString(appKey, workspaceKey, ciphertext)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Original: %s\n", plaintext)
//	fmt.Printf("Decrypted: %s\n", decrypted)
//
// Binary data encryption:
//
//	// Encrypt raw bytes (for binary data, images, etc.)
//	data := []byte{0x48, 0x65, 0x6c, 0x6c, 0x6f} // "Hello"
//
//	encrypted, err := secrets.EncryptBytes(appKey, workspaceKey, data)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	decrypted, err := secrets.DecryptBytes(appKey, workspaceKey, encrypted)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Match: %t\n", bytes.Equal(data, decrypted))
//
// # Security Considerations
//
// Key requirements:
//   - Both keys must be exactly 32 bytes (256 bits)
//   - Generate using cryptographically secure random source
//   - Store securely (environment variables, key management service)
//   - Never log or expose keys in debug output
//
// Memory safety:
//   - Derived keys are cleared from memory after each operation
//
// Encryption properties:
//   - AES-256-GCM provides both confidentiality and authenticity
//   - Each encryption uses a unique random nonce
//   - Tampering with ciphertext will be detected during decryption
//   - No padding oracle vulnerabilities (GCM is stream cipher mode)
//
// # Error Handling
//
// The package defines specific error types:
//   - ErrInvalidAppKey: App key is not 32 bytes
//   - ErrInvalidWorkspaceKey: Workspace key is not 32 bytes
//   - ErrKeyDerivationFailed: HKDF key derivation failed
//   - ErrEncryptionFailed: AES-GCM encryption failed
//   - ErrDecryptionFailed: AES-GCM decryption failed (includes tampering)
//   - ErrInvalidCiphertext: Ciphertext format invalid or corrupted
//
// # Tenant SMTP Passwords
//
// The tenantmail package stores SMTP passwords encrypted with the
// application key from SECRETS_APP_KEY and a workspace key derived from the
// tenant ID, so a ciphertext copied to another tenant's row fails to decrypt.
package secrets

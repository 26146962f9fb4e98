// Package crypto provides the encrypted envelope for vault backups.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from password via Argon2id
//   - 12-byte random nonce per envelope, stored in the envelope header
//   - Authenticated encryption prevents tampering
//
// Key derivation uses Argon2id with:
//   - 16-byte random salt (stored in the envelope header)
//   - 64 MiB memory, 1 pass, 4 lanes
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Encryptor.Destroy() when done with encryption operations
package crypto

// Package storage provides the BBolt database holding the live vault.
//
// Database structure uses two buckets:
//   - config: format version, created/modified timestamps, vault ID
//   - prompts: prompt key → binary prompt record (codec format)
//
// The live database is not password-protected; encryption applies to
// backup files only (see the backup and crypto packages). This mirrors the
// split between the always-open working store and portable exports.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage

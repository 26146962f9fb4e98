// Package vault implements the versioned prompt store.
//
// A Vault maps keys to prompts. Each prompt owns an append-only sequence
// of immutable versions, numbered 1..N without gaps, plus a table of tags:
// mutable named aliases pointing at version numbers. The dev tag always
// follows the most recently appended version.
//
// The package performs no locking and no I/O. Concurrency is handled by
// the manager package, persistence by the storage and backup packages.
package vault

// Package manager provides the concurrency-safe entry point to one live
// vault.
//
// A Manager owns the in-memory vault behind a reader/writer lock: reads
// (Get, History, Keys, Diff, Status) run concurrently, mutations (Add,
// Update, Tag, Promote, Restore) are exclusive. Every operation either
// fully succeeds and is visible to subsequent callers, or fails and
// leaves prior state unchanged.
//
// A manager opened with Open mirrors every mutation into a BBolt database
// so state survives between CLI invocations; New gives a memory-only
// manager for library and test use. Backup file I/O runs outside the lock:
// Dump snapshots under a read lock and writes afterwards, Restore decodes
// first and swaps the new vault in under the write lock.
//
// Managers are constructed explicitly and passed to callers; there is no
// process-wide singleton.
package manager

package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/live-labs/promptvault/internal/backup"
	"github.com/live-labs/promptvault/internal/codec"
	"github.com/live-labs/promptvault/internal/storage"
	"github.com/live-labs/promptvault/internal/vault"
)

// ErrNoStorage is returned by storage-backed operations on a memory-only
// manager.
var ErrNoStorage = errors.New("manager has no backing storage")

// Manager is the single shared owner of one live vault.
type Manager struct {
	mu    sync.RWMutex
	vault *vault.Vault
	store *storage.Storage // nil when memory-only
}

// New returns a memory-only manager starting from an empty vault.
func New() *Manager {
	return &Manager{vault: vault.New()}
}

// Open loads the vault database at path, creating it (and its parent
// directory) if missing.
func Open(path string) (*Manager, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create vault directory: %w", err)
		}
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	v, err := store.LoadVault()
	if err != nil {
		store.Close()
		return nil, err
	}
	return &Manager{vault: v, store: store}, nil
}

// Close releases the backing storage, if any.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// Add creates a prompt with version 1 tagged dev. Returns 1.
func (m *Manager) Add(key, content string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	err := m.mutate(key, func() error {
		var err error
		n, err = m.vault.Add(key, content)
		return err
	})
	return n, err
}

// Update appends the next version and repoints dev at it. Returns the new
// version number.
func (m *Manager) Update(key, content, message string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	err := m.mutate(key, func() error {
		var err error
		n, err = m.vault.Update(key, content, message)
		return err
	})
	return n, err
}

// Tag points name at the given version of key.
func (m *Manager) Tag(key, name string, number int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(key, func() error {
		return m.vault.Tag(key, name, number)
	})
}

// Promote points name at the latest version of key.
func (m *Manager) Promote(key, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutate(key, func() error {
		return m.vault.Promote(key, name)
	})
}

// Get returns the content of the selected version of key.
func (m *Manager) Get(key string, sel vault.Selector) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vault.Get(key, sel)
}

// History returns all versions of key, ascending by number.
func (m *Manager) History(key string) ([]vault.VersionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vault.History(key)
}

// Keys returns all prompt keys, sorted.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vault.Keys()
}

// Dump writes a consistent snapshot of the vault to path, encrypted iff
// password is non-empty. Only the snapshot happens under the lock; the
// envelope and file I/O run after it is released.
func (m *Manager) Dump(path string, password []byte) error {
	return backup.Write(path, m.snapshot(), password)
}

// snapshot encodes the vault under the read lock. The unlock is deferred
// so the lock is released even if encoding panics.
func (m *Manager) snapshot() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return codec.Encode(m.vault)
}

// Restore replaces the live vault with the contents of the backup at
// path. The previous state is discarded entirely; on any failure it stays
// untouched.
func (m *Manager) Restore(path string, password []byte) error {
	v, err := backup.Restore(path, password)
	if err != nil {
		return err
	}
	return m.swap(v)
}

// RestoreOrDefault is Restore, except a missing file resets the vault to
// empty instead of failing.
func (m *Manager) RestoreOrDefault(path string, password []byte) error {
	v, err := backup.RestoreOrDefault(path, password)
	if err != nil {
		return err
	}
	return m.swap(v)
}

// Status summarizes the live vault.
type Status struct {
	Prompts  int
	Versions int
	Tags     int
	Path     string // empty for memory-only managers
	Modified time.Time
}

// Status reports prompt/version/tag counts and storage details.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var st Status
	for _, p := range m.vault.Prompts {
		st.Prompts++
		st.Versions += len(p.Versions)
		st.Tags += len(p.Tags)
	}
	if m.store != nil {
		st.Path = m.store.Path()
		if modified, err := m.store.GetModified(); err == nil {
			st.Modified = modified
		}
	}
	return st
}

// VaultID returns a stable random identifier for the backing database,
// generating one on first use. Used to key keyring entries.
func (m *Manager) VaultID() (string, error) {
	if m.store == nil {
		return "", ErrNoStorage
	}
	return m.store.GetOrCreateVaultID()
}

// mutate runs op against the vault and persists the affected prompt. If
// persistence fails the in-memory change is rolled back, so callers never
// observe state that is not on disk.
func (m *Manager) mutate(key string, op func() error) error {
	prev := m.vault.Prompts[key].Clone()
	if err := op(); err != nil {
		return err
	}
	if m.store == nil {
		return nil
	}
	if err := m.store.PutPrompt(key, codec.EncodePrompt(key, m.vault.Prompts[key])); err != nil {
		if prev == nil {
			delete(m.vault.Prompts, key)
		} else {
			m.vault.Prompts[key] = prev
		}
		return fmt.Errorf("failed to persist prompt %q: %w", key, err)
	}
	return nil
}

// swap installs v as the live vault under the write lock. With backing
// storage the on-disk state is replaced first, in one transaction.
func (m *Manager) swap(v *vault.Vault) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store != nil {
		if err := m.store.ReplaceAll(v); err != nil {
			return err
		}
	}
	m.vault = v
	return nil
}

// Package backup reads and writes portable vault backup files: the codec
// byte stream wrapped in the crypto envelope, written atomically so a
// crash mid-write never leaves a partial file at the destination path.
package backup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/live-labs/promptvault/internal/codec"
	"github.com/live-labs/promptvault/internal/crypto"
	"github.com/live-labs/promptvault/internal/vault"
)

// Dump writes v to path, encrypted iff password is non-empty.
func Dump(path string, v *vault.Vault, password []byte) error {
	return Write(path, codec.Encode(v), password)
}

// Write wraps an already-encoded payload in an envelope and writes it to
// path. The data goes to a temp file in the destination directory first
// and is renamed into place, so the destination is either absent, the old
// file, or the complete new file - never a partial write.
func Write(path string, payload, password []byte) error {
	out, err := crypto.Wrap(payload, password)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close backup: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Restore reads a backup file, unwraps the envelope and decodes the vault.
// The decoded data is fully revalidated before being returned.
func Restore(path string, password []byte) (*vault.Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	payload, err := crypto.Unwrap(data, password)
	if err != nil {
		return nil, err
	}
	return codec.Decode(payload)
}

// RestoreOrDefault is Restore, except a missing file yields an empty vault
// instead of an error. A present-but-unreadable file still fails.
func RestoreOrDefault(path string, password []byte) (*vault.Vault, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return vault.New(), nil
	}
	return Restore(path, password)
}

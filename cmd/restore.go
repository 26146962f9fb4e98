package cmd

import (
	"errors"
	"fmt"

	"github.com/live-labs/promptvault/internal/crypto"
	"github.com/live-labs/promptvault/internal/manager"
)

// Restore replaces the live vault with the contents of a backup file.
// With allowMissing, a missing file resets the vault to empty instead of
// failing.
func Restore(path string, allowMissing bool) {
	m := OpenManager()
	defer m.Close()

	password := BackupPassword(m)
	err := restore(m, path, password, allowMissing)
	if errors.Is(err, crypto.ErrAuthFailed) && password == nil {
		// Encrypted backup and nothing cached: ask once.
		password, err = ReadPassword("Enter backup password: ")
		if err != nil {
			HandleError(err)
		}
		err = restore(m, path, password, allowMissing)
	}
	crypto.ClearBytes(password)
	if err != nil {
		HandleError(err)
	}

	st := m.Status()
	fmt.Printf("Restored %d prompt(s), %d version(s) from %s\n", st.Prompts, st.Versions, path)
}

func restore(m *manager.Manager, path string, password []byte, allowMissing bool) error {
	if allowMissing {
		return m.RestoreOrDefault(path, password)
	}
	return m.Restore(path, password)
}

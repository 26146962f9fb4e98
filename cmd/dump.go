package cmd

import (
	"fmt"

	"github.com/live-labs/promptvault/internal/crypto"
)

// Dump writes a backup of the whole vault to path. Encrypted unless
// plain is set; the password comes from the environment, the keyring, or
// an interactive confirmation prompt, in that order.
func Dump(path string, plain bool) {
	m := OpenManager()
	defer m.Close()

	var password []byte
	if !plain {
		password = BackupPassword(m)
		if password == nil {
			var err error
			password, err = ReadPasswordConfirm()
			if err != nil {
				HandleError(err)
			}
		}
		defer crypto.ClearBytes(password)
	}

	if err := m.Dump(path, password); err != nil {
		HandleError(err)
	}

	st := m.Status()
	if plain {
		fmt.Printf("Dumped %d prompt(s) to %s (plaintext)\n", st.Prompts, path)
	} else {
		fmt.Printf("Dumped %d prompt(s) to %s\n", st.Prompts, path)
	}
}

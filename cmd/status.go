package cmd

import (
	"fmt"

	"github.com/live-labs/promptvault/internal/keyring"
)

// Status shows vault totals and storage details.
func Status() {
	m := OpenManager()
	defer m.Close()

	st := m.Status()

	fmt.Printf("Vault:    %s\n", st.Path)
	fmt.Printf("Prompts:  %d\n", st.Prompts)
	fmt.Printf("Versions: %d\n", st.Versions)
	fmt.Printf("Tags:     %d\n", st.Tags)
	if !st.Modified.IsZero() {
		fmt.Printf("Modified: %s\n", st.Modified.Local().Format("2006-01-02 15:04:05"))
	}

	if vaultID, err := m.VaultID(); err == nil && keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/promptvault/internal/crypto"
	"github.com/live-labs/promptvault/internal/keyring"
)

// KeyringSave saves the backup password to the OS keyring
func KeyringSave() {
	m := OpenManager()
	defer m.Close()

	password, err := ReadPassword("Enter backup password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	if len(password) == 0 {
		fmt.Fprintf(os.Stderr, "Error: password must not be empty\n")
		os.Exit(1)
	}

	vaultID, err := m.VaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(vaultID, string(password)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the backup password from the OS keyring
func KeyringDelete() {
	m := OpenManager()
	defer m.Close()

	vaultID, err := m.VaultID()
	if err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(vaultID); err != nil {
		fmt.Println("No password stored in keyring")
		return
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a backup password is stored in the keyring
func KeyringStatus() {
	m := OpenManager()
	defer m.Close()

	vaultID, err := m.VaultID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.HasPassword(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}

package cmd

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/live-labs/promptvault/internal/crypto"
	"github.com/live-labs/promptvault/internal/keyring"
	"github.com/live-labs/promptvault/internal/manager"
)

// ReadPassword reads a password from the terminal without echoing
func ReadPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func ReadPasswordConfirm() ([]byte, error) {
	password1, err := ReadPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if len(password1) == 0 {
		return nil, fmt.Errorf("password must not be empty")
	}
	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, fmt.Errorf("passwords do not match")
	}

	// Return a copy of the password
	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}

// GetPasswordFromEnv reads password from PROMPTVAULT_PASSWORD environment variable
func GetPasswordFromEnv() []byte {
	password := os.Getenv("PROMPTVAULT_PASSWORD")
	if password == "" {
		return nil
	}
	// Return a copy to avoid issues when clearing the bytes
	result := make([]byte, len(password))
	copy(result, []byte(password))
	return result
}

// BackupPassword resolves a backup password without prompting: the
// environment variable first, then the OS keyring. Returns nil when
// neither has one; an empty stored value counts as absent so it can
// never stand in for a real password. The caller is responsible for
// crypto.ClearBytes.
func BackupPassword(m *manager.Manager) []byte {
	if password := GetPasswordFromEnv(); password != nil {
		return password
	}
	vaultID, err := m.VaultID()
	if err != nil {
		return nil
	}
	stored, err := keyring.GetPassword(vaultID)
	if err != nil || stored == "" {
		return nil
	}
	return []byte(stored)
}

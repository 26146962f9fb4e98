package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/live-labs/promptvault/internal/crypto"
	"github.com/live-labs/promptvault/internal/manager"
	"github.com/live-labs/promptvault/internal/vault"
)

// DBPath returns the live vault database path: PROMPTVAULT_DB when set,
// otherwise ~/.promptvault/vault.db.
func DBPath() string {
	if path := os.Getenv("PROMPTVAULT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory, fall back to the working directory
		return filepath.Join(".promptvault", "vault.db")
	}
	return filepath.Join(home, ".promptvault", "vault.db")
}

// OpenManager opens the live vault, exiting on failure. Callers must
// Close the returned manager.
func OpenManager() *manager.Manager {
	m, err := manager.Open(DBPath())
	if err != nil {
		HandleError(err)
	}
	return m
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, vault.ErrKeyNotFound):
		fmt.Fprintf(os.Stderr, "Error: prompt not found\n")
		fmt.Fprintf(os.Stderr, "Use 'promptvault ls' to list known prompts\n")
	case errors.Is(err, vault.ErrDuplicateKey):
		fmt.Fprintf(os.Stderr, "Error: prompt already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'promptvault update' to add a new version\n")
	case errors.Is(err, vault.ErrVersionNotFound):
		fmt.Fprintf(os.Stderr, "Error: no such version\n")
	case errors.Is(err, vault.ErrTagNotFound):
		fmt.Fprintf(os.Stderr, "Error: no such tag\n")
	case errors.Is(err, vault.ErrDevNotLatest):
		fmt.Fprintf(os.Stderr, "Error: the dev tag always points to the latest version\n")
	case errors.Is(err, crypto.ErrAuthFailed):
		fmt.Fprintf(os.Stderr, "Error: wrong password\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// readContent returns arg, or reads stdin to EOF when arg is "-" or
// empty so content can be piped in.
func readContent(arg string) string {
	if arg != "" && arg != "-" {
		return arg
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		HandleError(fmt.Errorf("failed to read stdin: %w", err))
	}
	return string(data)
}

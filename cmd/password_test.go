package cmd

import (
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/live-labs/promptvault/internal/keyring"
	"github.com/live-labs/promptvault/internal/manager"
)

func TestGetPasswordFromEnv(t *testing.T) {
	t.Setenv("PROMPTVAULT_PASSWORD", "")
	if got := GetPasswordFromEnv(); got != nil {
		t.Errorf("Empty env var should yield nil, got %q", got)
	}

	t.Setenv("PROMPTVAULT_PASSWORD", "hunter2")
	if got := GetPasswordFromEnv(); string(got) != "hunter2" {
		t.Errorf("Password mismatch: got %q", got)
	}
}

func TestBackupPasswordResolution(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv("PROMPTVAULT_PASSWORD", "")

	m, err := manager.Open(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("Failed to open manager: %v", err)
	}
	defer m.Close()

	// Nothing cached anywhere
	if got := BackupPassword(m); got != nil {
		t.Errorf("Expected nil with no password sources, got %q", got)
	}

	vaultID, err := m.VaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}

	// An empty keyring entry must count as absent, never as a password,
	// so an encrypted dump can never silently degrade to plaintext
	if err := keyring.SavePassword(vaultID, ""); err != nil {
		t.Fatalf("Failed to save password: %v", err)
	}
	if got := BackupPassword(m); got != nil {
		t.Errorf("Empty keyring entry should yield nil, got %q", got)
	}

	// A real entry resolves
	if err := keyring.SavePassword(vaultID, "hunter2"); err != nil {
		t.Fatalf("Failed to save password: %v", err)
	}
	if got := BackupPassword(m); string(got) != "hunter2" {
		t.Errorf("Password mismatch: got %q", got)
	}

	// The environment variable wins over the keyring
	t.Setenv("PROMPTVAULT_PASSWORD", "from-env")
	if got := BackupPassword(m); string(got) != "from-env" {
		t.Errorf("Env var should take precedence, got %q", got)
	}
}

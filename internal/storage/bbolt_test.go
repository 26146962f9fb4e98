package storage

import (
	"path/filepath"
	"testing"

	"github.com/live-labs/promptvault/internal/codec"
	"github.com/live-labs/promptvault/internal/vault"
)

func openStore(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInitializes(t *testing.T) {
	s := openStore(t)

	// A fresh database gets its modified timestamp stamped
	modified, err := s.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified time: %v", err)
	}
	if modified.IsZero() {
		t.Error("Modified time should be set on a fresh database")
	}

	// And loads as an empty vault
	v, err := s.LoadVault()
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}
	if len(v.Prompts) != 0 {
		t.Errorf("Expected empty vault, got %d prompts", len(v.Prompts))
	}
}

func TestPutAndLoad(t *testing.T) {
	s := openStore(t)

	v := vault.New()
	if _, err := v.Add("greeting", "Hello"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	if _, err := v.Update("greeting", "Hi", "shorter"); err != nil {
		t.Fatalf("Failed to update prompt: %v", err)
	}

	if err := s.PutPrompt("greeting", codec.EncodePrompt("greeting", v.Prompts["greeting"])); err != nil {
		t.Fatalf("Failed to put prompt: %v", err)
	}

	loaded, err := s.LoadVault()
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}
	p, ok := loaded.Prompts["greeting"]
	if !ok {
		t.Fatal("Prompt missing after load")
	}
	if len(p.Versions) != 2 {
		t.Errorf("Expected 2 versions, got %d", len(p.Versions))
	}
	if p.Versions[1].Content != "Hi" {
		t.Errorf("Content mismatch: got %q", p.Versions[1].Content)
	}
	if p.Tags[vault.DevTag] != 2 {
		t.Errorf("dev tag mismatch: got %d", p.Tags[vault.DevTag])
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vault.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}

	v := vault.New()
	if _, err := v.Add("greeting", "Hello"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	if err := s.PutPrompt("greeting", codec.EncodePrompt("greeting", v.Prompts["greeting"])); err != nil {
		t.Fatalf("Failed to put prompt: %v", err)
	}
	s.Close()

	// Reopen and verify
	s2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer s2.Close()

	loaded, err := s2.LoadVault()
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}
	if _, ok := loaded.Prompts["greeting"]; !ok {
		t.Error("Prompt not persisted across reopen")
	}
}

func TestReplaceAll(t *testing.T) {
	s := openStore(t)

	old := vault.New()
	if _, err := old.Add("stale", "old content"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	if err := s.PutPrompt("stale", codec.EncodePrompt("stale", old.Prompts["stale"])); err != nil {
		t.Fatalf("Failed to put prompt: %v", err)
	}

	fresh := vault.New()
	if _, err := fresh.Add("new", "new content"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	if err := s.ReplaceAll(fresh); err != nil {
		t.Fatalf("Failed to replace: %v", err)
	}

	loaded, err := s.LoadVault()
	if err != nil {
		t.Fatalf("Failed to load vault: %v", err)
	}
	if _, ok := loaded.Prompts["stale"]; ok {
		t.Error("Old prompt survived ReplaceAll")
	}
	if _, ok := loaded.Prompts["new"]; !ok {
		t.Error("New prompt missing after ReplaceAll")
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	s := openStore(t)

	if err := s.PutPrompt("bad", []byte("not a prompt record")); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	if _, err := s.LoadVault(); err == nil {
		t.Error("Expected error loading corrupt record")
	}
}

func TestVaultID(t *testing.T) {
	s := openStore(t)

	// No ID until one is requested
	if _, err := s.GetVaultID(); err == nil {
		t.Error("Expected error before vault ID exists")
	}

	id1, err := s.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to create vault ID: %v", err)
	}
	if len(id1) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(id1))
	}

	// Stable across calls
	id2, err := s.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Vault ID changed: %s vs %s", id1, id2)
	}
}

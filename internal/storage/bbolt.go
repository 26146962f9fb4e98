package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/live-labs/promptvault/internal/codec"
	"github.com/live-labs/promptvault/internal/vault"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // Format version, timestamps, vault ID - plain key/value
	PromptsBucket = []byte("prompts") // Prompt key → codec-encoded prompt record
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigVaultID  = []byte("vault_id")
)

// Storage provides BBolt-based persistence for the live vault
type Storage struct {
	db *bolt.DB
}

// Open opens the vault database at path, creating and initializing it if
// it does not exist yet.
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, PromptsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}

		// Fresh database
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		now, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, now); err != nil {
			return err
		}
		return config.Put(ConfigModified, now)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the filesystem path of the database
func (s *Storage) Path() string {
	return s.db.Path()
}

// PutPrompt stores one prompt record and bumps the modified timestamp.
func (s *Storage) PutPrompt(key string, record []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(PromptsBucket).Put([]byte(key), record); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// LoadVault reads every prompt record and assembles the in-memory vault.
// Records are validated as untrusted input; any malformed record fails the
// whole load.
func (s *Storage) LoadVault() (*vault.Vault, error) {
	v := vault.New()
	err := s.db.View(func(tx *bolt.Tx) error {
		prompts := tx.Bucket(PromptsBucket)
		if prompts == nil {
			return fmt.Errorf("prompts bucket not found")
		}
		return prompts.ForEach(func(k, record []byte) error {
			key, p, err := codec.DecodePrompt(record)
			if err != nil {
				return fmt.Errorf("prompt record %q: %w", k, err)
			}
			if key != string(k) {
				return fmt.Errorf("%w: record key %q stored under %q", codec.ErrCorruptData, key, k)
			}
			v.Prompts[key] = p
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrCorruptData, err)
	}
	return v, nil
}

// ReplaceAll drops every stored prompt and writes v instead, in a single
// transaction. Used by restore; the previous state survives if the
// transaction fails.
func (s *Storage) ReplaceAll(v *vault.Vault) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(PromptsBucket); err != nil {
			return fmt.Errorf("failed to clear prompts: %w", err)
		}
		prompts, err := tx.CreateBucket(PromptsBucket)
		if err != nil {
			return fmt.Errorf("failed to recreate prompts bucket: %w", err)
		}
		for key, p := range v.Prompts {
			if err := prompts.Put([]byte(key), codec.EncodePrompt(key, p)); err != nil {
				return err
			}
		}
		return touchModified(tx)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from the config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves the existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = hex.EncodeToString(b)

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(ConfigBucket).Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

func touchModified(tx *bolt.Tx) error {
	now, _ := time.Now().MarshalBinary()
	return tx.Bucket(ConfigBucket).Put(ConfigModified, now)
}

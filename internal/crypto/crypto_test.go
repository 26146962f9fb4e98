package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestDeriveKeyDeterministic(t *testing.T) {
	kdf, err := NewKDF()
	if err != nil {
		t.Fatalf("Failed to create KDF: %v", err)
	}

	password := []byte("correct horse battery staple")
	key1 := kdf.DeriveKey(password)
	key2 := kdf.DeriveKey(password)

	if len(key1) != KeySize {
		t.Errorf("Key size mismatch: got %d, want %d", len(key1), KeySize)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Same password and salt should derive the same key")
	}
}

func TestDeriveKeySaltDependence(t *testing.T) {
	kdf1, err := NewKDF()
	if err != nil {
		t.Fatalf("Failed to create KDF: %v", err)
	}
	kdf2, err := NewKDF()
	if err != nil {
		t.Fatalf("Failed to create KDF: %v", err)
	}

	password := []byte("password")
	if bytes.Equal(kdf1.DeriveKey(password), kdf2.DeriveKey(password)) {
		t.Error("Different salts should derive different keys")
	}
}

func TestSealOpen(t *testing.T) {
	key := make([]byte, KeySize)
	copy(key, "0123456789abcdef0123456789abcdef")
	enc := NewEncryptor(key)

	nonce, err := GenerateRandom(NonceSize)
	if err != nil {
		t.Fatalf("Failed to generate nonce: %v", err)
	}

	plaintext := []byte("secret prompt content")
	ciphertext, err := enc.Seal(nonce, plaintext)
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("Ciphertext contains plaintext")
	}

	decrypted, err := enc.Open(nonce, ciphertext)
	if err != nil {
		t.Fatalf("Failed to open: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Decryption mismatch: got %q, want %q", decrypted, plaintext)
	}
}

func TestOpenTampered(t *testing.T) {
	key := make([]byte, KeySize)
	enc := NewEncryptor(key)

	nonce := make([]byte, NonceSize)
	ciphertext, err := enc.Seal(nonce, []byte("payload"))
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}

	// Flip one bit anywhere and authentication must fail
	for i := range ciphertext {
		tampered := bytes.Clone(ciphertext)
		tampered[i] ^= 0x01
		if _, err := enc.Open(nonce, tampered); !errors.Is(err, ErrAuthFailed) {
			t.Fatalf("Tampering at byte %d: expected ErrAuthFailed, got %v", i, err)
		}
	}
}

func TestOpenWrongKey(t *testing.T) {
	key1 := make([]byte, KeySize)
	key2 := make([]byte, KeySize)
	key2[0] = 1

	nonce := make([]byte, NonceSize)
	ciphertext, err := NewEncryptor(key1).Seal(nonce, []byte("payload"))
	if err != nil {
		t.Fatalf("Failed to seal: %v", err)
	}

	if _, err := NewEncryptor(key2).Open(nonce, ciphertext); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Expected ErrAuthFailed, got %v", err)
	}
}

func TestOpenShortCiphertext(t *testing.T) {
	enc := NewEncryptor(make([]byte, KeySize))
	nonce := make([]byte, NonceSize)

	if _, err := enc.Open(nonce, []byte("short")); !errors.Is(err, ErrAuthFailed) {
		t.Errorf("Expected ErrAuthFailed, got %v", err)
	}
}

func TestClearBytes(t *testing.T) {
	data := []byte("sensitive")
	ClearBytes(data)
	for i, b := range data {
		if b != 0 {
			t.Errorf("Byte %d not cleared", i)
		}
	}
}

func TestConstantTimeCompare(t *testing.T) {
	if !ConstantTimeCompare([]byte("same"), []byte("same")) {
		t.Error("Equal slices should compare true")
	}
	if ConstantTimeCompare([]byte("one"), []byte("two")) {
		t.Error("Different slices should compare false")
	}
	if ConstantTimeCompare([]byte("short"), []byte("longer")) {
		t.Error("Different lengths should compare false")
	}
}

func TestGenerateRandom(t *testing.T) {
	a, err := GenerateRandom(32)
	if err != nil {
		t.Fatalf("Failed to generate random bytes: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("Length mismatch: got %d", len(a))
	}

	b, err := GenerateRandom(32)
	if err != nil {
		t.Fatalf("Failed to generate random bytes: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("Two random draws should differ")
	}
}

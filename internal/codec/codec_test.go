package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/live-labs/promptvault/internal/vault"
)

func buildVault(t *testing.T) *vault.Vault {
	t.Helper()
	v := vault.New()
	if _, err := v.Add("greeting", "Hello, {name}!"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	if _, err := v.Update("greeting", "Hi, {name}!", "shorter wording"); err != nil {
		t.Fatalf("Failed to update prompt: %v", err)
	}
	if err := v.Tag("greeting", "prod", 1); err != nil {
		t.Fatalf("Failed to tag: %v", err)
	}
	if _, err := v.Add("summary", "Summarize: {text}"); err != nil {
		t.Fatalf("Failed to add prompt: %v", err)
	}
	return v
}

func TestRoundTrip(t *testing.T) {
	v := buildVault(t)

	decoded, err := Decode(Encode(v))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if len(decoded.Prompts) != len(v.Prompts) {
		t.Fatalf("Prompt count mismatch: got %d, want %d", len(decoded.Prompts), len(v.Prompts))
	}
	for key, p := range v.Prompts {
		d, ok := decoded.Prompts[key]
		if !ok {
			t.Fatalf("Prompt %q missing after decode", key)
		}
		if len(d.Versions) != len(p.Versions) {
			t.Fatalf("Prompt %q version count mismatch: got %d, want %d", key, len(d.Versions), len(p.Versions))
		}
		for i, ver := range p.Versions {
			got := d.Versions[i]
			if got.Number != ver.Number {
				t.Errorf("Prompt %q v%d number mismatch: got %d", key, ver.Number, got.Number)
			}
			if got.Content != ver.Content {
				t.Errorf("Prompt %q v%d content mismatch: got %q", key, ver.Number, got.Content)
			}
			if got.Message != ver.Message {
				t.Errorf("Prompt %q v%d message mismatch: got %q", key, ver.Number, got.Message)
			}
			// Timestamps survive at second precision
			if got.CreatedAt.Unix() != ver.CreatedAt.Unix() {
				t.Errorf("Prompt %q v%d timestamp mismatch: got %v, want %v", key, ver.Number, got.CreatedAt, ver.CreatedAt)
			}
		}
		if len(d.Tags) != len(p.Tags) {
			t.Fatalf("Prompt %q tag count mismatch: got %d, want %d", key, len(d.Tags), len(p.Tags))
		}
		for name, target := range p.Tags {
			if d.Tags[name] != target {
				t.Errorf("Prompt %q tag %q mismatch: got %d, want %d", key, name, d.Tags[name], target)
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := buildVault(t)

	a := Encode(v)
	b := Encode(v)
	if !bytes.Equal(a, b) {
		t.Error("Encoding the same vault twice produced different bytes")
	}

	// Decode and re-encode must also be byte-identical
	decoded, err := Decode(a)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !bytes.Equal(Encode(decoded), a) {
		t.Error("Re-encoding a decoded vault produced different bytes")
	}
}

func TestEmptyVault(t *testing.T) {
	decoded, err := Decode(Encode(vault.New()))
	if err != nil {
		t.Fatalf("Failed to decode empty vault: %v", err)
	}
	if len(decoded.Prompts) != 0 {
		t.Errorf("Expected empty vault, got %d prompts", len(decoded.Prompts))
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data := Encode(buildVault(t))
	data[0] = 'X'
	if _, err := Decode(data); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData, got %v", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data := Encode(buildVault(t))
	data[4] = 99
	if _, err := Decode(data); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData, got %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := Encode(buildVault(t))

	// Every proper prefix must fail cleanly, never panic
	for n := 0; n < len(data); n++ {
		if _, err := Decode(data[:n]); !errors.Is(err, ErrCorruptData) {
			t.Fatalf("Truncation at %d: expected ErrCorruptData, got %v", n, err)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	data := append(Encode(buildVault(t)), 0xFF)
	if _, err := Decode(data); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData for trailing bytes, got %v", err)
	}
}

func TestDecodeHugeCount(t *testing.T) {
	// Header claiming 4 billion prompts must be rejected before allocation
	data := []byte(magic)
	data = append(data, FormatVersion)
	data = append(data, 0xFF, 0xFF, 0xFF, 0xFF)
	if _, err := Decode(data); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData for huge count, got %v", err)
	}
}

func TestDecodeHugeStringLength(t *testing.T) {
	// One prompt whose key length field runs past the end of the buffer
	data := []byte(magic)
	data = append(data, FormatVersion)
	data = append(data, 1, 0, 0, 0)          // one prompt
	data = append(data, 0xFF, 0xFF, 0xFF, 0) // key length 16 MiB
	data = append(data, 'a', 'b', 'c')
	if _, err := Decode(data); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData for oversized length field, got %v", err)
	}
}

func TestDecodeInvalidInvariants(t *testing.T) {
	// A structurally parseable vault whose tag points past its versions
	v := vault.New()
	v.Prompts["bad"] = &vault.Prompt{
		Versions: []vault.Version{{Number: 1, Content: "x", CreatedAt: time.Now()}},
		Tags:     map[string]int{"prod": 7},
	}
	if _, err := Decode(Encode(v)); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData for dangling tag, got %v", err)
	}
}

func TestPromptRecordRoundTrip(t *testing.T) {
	v := buildVault(t)
	p := v.Prompts["greeting"]

	key, decoded, err := DecodePrompt(EncodePrompt("greeting", p))
	if err != nil {
		t.Fatalf("Failed to decode prompt record: %v", err)
	}
	if key != "greeting" {
		t.Errorf("Key mismatch: got %q", key)
	}
	if len(decoded.Versions) != len(p.Versions) {
		t.Errorf("Version count mismatch: got %d, want %d", len(decoded.Versions), len(p.Versions))
	}
	if decoded.Tags["prod"] != 1 || decoded.Tags["dev"] != 2 {
		t.Errorf("Tags mismatch: got %v", decoded.Tags)
	}
}

func TestDecodePromptTrailing(t *testing.T) {
	v := buildVault(t)
	record := append(EncodePrompt("greeting", v.Prompts["greeting"]), 0x00)
	if _, _, err := DecodePrompt(record); !errors.Is(err, ErrCorruptData) {
		t.Errorf("Expected ErrCorruptData for trailing bytes, got %v", err)
	}
}

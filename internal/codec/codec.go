// Package codec serializes vaults to a flat binary byte sequence and back.
//
// Wire format (all integers little-endian, lengths in bytes):
//
//	magic "PPVT", format version (1 byte), prompt count (u32), then per
//	prompt: key, versions (number u32, created_at i64 epoch seconds,
//	optional message, content), tags (name, target version u32). Strings
//	are u32-length-prefixed.
//
// Decoding treats input as untrusted: every length field is bounds-checked
// before allocation and every structural invariant is revalidated. The
// codec knows nothing about encryption; see the crypto package.
package codec

import (
	"errors"
	"fmt"

	"github.com/live-labs/promptvault/internal/vault"
)

const (
	magic = "PPVT"

	// FormatVersion is the current wire format revision.
	FormatVersion = 1

	// Minimum encoded sizes, used to sanity-check count fields before
	// allocating.
	minVersionSize = 4 + 8 + 1 + 4 // number + created_at + has_message + content_len
	minTagSize     = 4 + 4         // name_len + target_version
	minPromptSize  = 4 + 4 + 4     // key_len + version_count + tag_count
)

// ErrCorruptData reports malformed or invariant-violating input.
var ErrCorruptData = errors.New("corrupt vault data")

// Encode serializes v. Prompts and tag names are written in sorted order,
// so equal vaults encode to equal bytes.
func Encode(v *vault.Vault) []byte {
	w := &writer{}
	w.raw([]byte(magic))
	w.u8(FormatVersion)
	keys := v.Keys()
	w.u32(uint32(len(keys)))
	for _, key := range keys {
		encodePrompt(w, key, v.Prompts[key])
	}
	return w.buf
}

// Decode deserializes and validates a vault produced by Encode.
func Decode(data []byte) (*vault.Vault, error) {
	r := &reader{buf: data}

	head, err := r.raw(len(magic))
	if err != nil {
		return nil, err
	}
	if string(head) != magic {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptData)
	}
	ver, err := r.u8()
	if err != nil {
		return nil, err
	}
	if ver != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorruptData, ver)
	}

	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	if int64(count)*minPromptSize > int64(r.remaining()) {
		return nil, fmt.Errorf("%w: prompt count %d exceeds input size", ErrCorruptData, count)
	}

	v := vault.New()
	for i := uint32(0); i < count; i++ {
		key, p, err := decodePrompt(r)
		if err != nil {
			return nil, err
		}
		if _, ok := v.Prompts[key]; ok {
			return nil, fmt.Errorf("%w: duplicate prompt key %q", ErrCorruptData, key)
		}
		v.Prompts[key] = p
	}
	if r.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptData, r.remaining())
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return v, nil
}

// EncodePrompt serializes a single keyed prompt record, the per-prompt body
// of the vault format. The storage layer persists prompts individually in
// this form.
func EncodePrompt(key string, p *vault.Prompt) []byte {
	w := &writer{}
	encodePrompt(w, key, p)
	return w.buf
}

// DecodePrompt deserializes and validates a record produced by EncodePrompt.
func DecodePrompt(data []byte) (string, *vault.Prompt, error) {
	r := &reader{buf: data}
	key, p, err := decodePrompt(r)
	if err != nil {
		return "", nil, err
	}
	if r.remaining() != 0 {
		return "", nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptData, r.remaining())
	}
	single := &vault.Vault{Prompts: map[string]*vault.Prompt{key: p}}
	if err := single.Validate(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return key, p, nil
}

package codec

import (
	"fmt"
	"sort"
	"time"

	"github.com/live-labs/promptvault/internal/vault"
)

func encodePrompt(w *writer, key string, p *vault.Prompt) {
	w.str(key)

	w.u32(uint32(len(p.Versions)))
	for _, ver := range p.Versions {
		w.u32(uint32(ver.Number))
		w.i64(ver.CreatedAt.Unix())
		if ver.Message != "" {
			w.u8(1)
			w.str(ver.Message)
		} else {
			w.u8(0)
		}
		w.str(ver.Content)
	}

	names := make([]string, 0, len(p.Tags))
	for name := range p.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	w.u32(uint32(len(names)))
	for _, name := range names {
		w.str(name)
		w.u32(uint32(p.Tags[name]))
	}
}

func decodePrompt(r *reader) (string, *vault.Prompt, error) {
	key, err := r.str()
	if err != nil {
		return "", nil, err
	}

	versionCount, err := r.u32()
	if err != nil {
		return "", nil, err
	}
	if int64(versionCount)*minVersionSize > int64(r.remaining()) {
		return "", nil, fmt.Errorf("%w: version count %d exceeds input size", ErrCorruptData, versionCount)
	}
	p := &vault.Prompt{Versions: make([]vault.Version, 0, versionCount)}
	for i := uint32(0); i < versionCount; i++ {
		number, err := r.u32()
		if err != nil {
			return "", nil, err
		}
		createdAt, err := r.i64()
		if err != nil {
			return "", nil, err
		}
		hasMessage, err := r.u8()
		if err != nil {
			return "", nil, err
		}
		var message string
		switch hasMessage {
		case 0:
		case 1:
			if message, err = r.str(); err != nil {
				return "", nil, err
			}
		default:
			return "", nil, fmt.Errorf("%w: invalid has_message byte %d", ErrCorruptData, hasMessage)
		}
		content, err := r.str()
		if err != nil {
			return "", nil, err
		}
		p.Versions = append(p.Versions, vault.Version{
			Number:    int(number),
			Content:   content,
			CreatedAt: time.Unix(createdAt, 0).UTC(),
			Message:   message,
		})
	}

	tagCount, err := r.u32()
	if err != nil {
		return "", nil, err
	}
	if int64(tagCount)*minTagSize > int64(r.remaining()) {
		return "", nil, fmt.Errorf("%w: tag count %d exceeds input size", ErrCorruptData, tagCount)
	}
	p.Tags = make(map[string]int, tagCount)
	for i := uint32(0); i < tagCount; i++ {
		name, err := r.str()
		if err != nil {
			return "", nil, err
		}
		target, err := r.u32()
		if err != nil {
			return "", nil, err
		}
		if _, ok := p.Tags[name]; ok {
			return "", nil, fmt.Errorf("%w: duplicate tag %q", ErrCorruptData, name)
		}
		p.Tags[name] = int(target)
	}

	return key, p, nil
}

type writer struct {
	buf []byte
}

func (w *writer) raw(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *writer) u8(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) u32(n uint32) {
	w.buf = append(w.buf, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
}

func (w *writer) i64(n int64) {
	u := uint64(n)
	w.buf = append(w.buf,
		byte(u), byte(u>>8), byte(u>>16), byte(u>>24),
		byte(u>>32), byte(u>>40), byte(u>>48), byte(u>>56))
}

func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) raw(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, fmt.Errorf("%w: truncated input", ErrCorruptData)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u8() (byte, error) {
	b, err := r.raw(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.raw(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (r *reader) i64() (int64, error) {
	b, err := r.raw(8)
	if err != nil {
		return 0, err
	}
	u := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
	return int64(u), nil
}

// str reads a u32 length prefix and that many bytes. The length is checked
// against the remaining buffer before any allocation happens.
func (r *reader) str() (string, error) {
	n, err := r.u32()
	if err != nil {
		return "", err
	}
	if int64(n) > int64(r.remaining()) {
		return "", fmt.Errorf("%w: length field %d past end of buffer", ErrCorruptData, n)
	}
	b, err := r.raw(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package vault

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DevTag is kept pointing at the most recent version of every prompt.
// It is created by Add and repointed by Update.
const DevTag = "dev"

var (
	ErrEmptyKey        = errors.New("prompt key must not be empty")
	ErrDuplicateKey    = errors.New("prompt key already exists")
	ErrKeyNotFound     = errors.New("prompt key not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrDevNotLatest    = errors.New("dev tag can only point to the latest version")
)

// Version is one immutable numbered snapshot of a prompt's content.
// None of its fields change after creation.
type Version struct {
	Number    int
	Content   string
	CreatedAt time.Time
	Message   string // empty means no message
}

// Prompt owns an append-only version sequence and a tag table.
type Prompt struct {
	Versions []Version
	Tags     map[string]int
}

// Vault is the root store owning all prompts.
type Vault struct {
	Prompts map[string]*Prompt
}

// New returns an empty vault.
func New() *Vault {
	return &Vault{Prompts: make(map[string]*Prompt)}
}

// Add creates a prompt under key with version 1 and tags it dev.
func (v *Vault) Add(key, content string) (int, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}
	if _, ok := v.Prompts[key]; ok {
		return 0, ErrDuplicateKey
	}
	v.Prompts[key] = &Prompt{
		Versions: []Version{{Number: 1, Content: content, CreatedAt: time.Now()}},
		Tags:     map[string]int{DevTag: 1},
	}
	return 1, nil
}

// Update appends the next version with the given content and optional
// message, and repoints dev at it. Prior versions are never touched.
func (v *Vault) Update(key, content, message string) (int, error) {
	p, err := v.prompt(key)
	if err != nil {
		return 0, err
	}
	n := p.Latest() + 1
	p.Versions = append(p.Versions, Version{
		Number:    n,
		Content:   content,
		CreatedAt: time.Now(),
		Message:   message,
	})
	p.Tags[DevTag] = n
	return n, nil
}

// Get resolves sel against the prompt's versions and tags and returns the
// selected version's content.
func (v *Vault) Get(key string, sel Selector) (string, error) {
	p, err := v.prompt(key)
	if err != nil {
		return "", err
	}
	n, err := p.Resolve(sel)
	if err != nil {
		return "", err
	}
	return p.Versions[n-1].Content, nil
}

// Tag points name at the given version number, overwriting any previous
// target of the same name. The dev tag is managed by Update and may only
// be pointed at the latest version manually.
func (v *Vault) Tag(key, name string, number int) error {
	p, err := v.prompt(key)
	if err != nil {
		return err
	}
	if number < 1 || number > p.Latest() {
		return ErrVersionNotFound
	}
	if name == DevTag && number != p.Latest() {
		return ErrDevNotLatest
	}
	p.Tags[name] = number
	return nil
}

// Promote points name at the latest version of key.
func (v *Vault) Promote(key, name string) error {
	p, err := v.prompt(key)
	if err != nil {
		return err
	}
	p.Tags[name] = p.Latest()
	return nil
}

// VersionInfo is one history entry. Tags lists the tag names currently
// pointing at the version; it is computed from the tag table, not stored.
type VersionInfo struct {
	Number    int
	CreatedAt time.Time
	Message   string
	Tags      []string
}

// History returns all versions of key, ascending by number.
func (v *Vault) History(key string) ([]VersionInfo, error) {
	p, err := v.prompt(key)
	if err != nil {
		return nil, err
	}
	infos := make([]VersionInfo, 0, len(p.Versions))
	for _, ver := range p.Versions {
		info := VersionInfo{
			Number:    ver.Number,
			CreatedAt: ver.CreatedAt,
			Message:   ver.Message,
		}
		for name, target := range p.Tags {
			if target == ver.Number {
				info.Tags = append(info.Tags, name)
			}
		}
		sort.Strings(info.Tags)
		infos = append(infos, info)
	}
	return infos, nil
}

// Keys returns all prompt keys, sorted.
func (v *Vault) Keys() []string {
	keys := make([]string, 0, len(v.Prompts))
	for key := range v.Prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate re-checks every structural invariant. Decoded data is treated
// as untrusted, so this runs after every decode and restore.
func (v *Vault) Validate() error {
	for key, p := range v.Prompts {
		if key == "" {
			return errors.New("empty prompt key")
		}
		if p == nil || len(p.Versions) == 0 {
			return fmt.Errorf("prompt %q has no versions", key)
		}
		for i, ver := range p.Versions {
			if ver.Number != i+1 {
				return fmt.Errorf("prompt %q: version sequence broken at index %d (got %d)", key, i, ver.Number)
			}
		}
		for name, target := range p.Tags {
			if name == "" {
				return fmt.Errorf("prompt %q has an empty tag name", key)
			}
			if target < 1 || target > len(p.Versions) {
				return fmt.Errorf("prompt %q: tag %q targets missing version %d", key, name, target)
			}
		}
	}
	return nil
}

// Latest returns the highest version number. Versions are gap-free from 1,
// so this is just the sequence length.
func (p *Prompt) Latest() int {
	return len(p.Versions)
}

// Resolve maps sel to a version number of p.
func (p *Prompt) Resolve(sel Selector) (int, error) {
	switch sel.kind {
	case selNumber:
		if sel.number < 1 || sel.number > p.Latest() {
			return 0, ErrVersionNotFound
		}
		return sel.number, nil
	case selTag:
		n, ok := p.Tags[sel.tag]
		if !ok {
			return 0, ErrTagNotFound
		}
		return n, nil
	default:
		return p.Latest(), nil
	}
}

// Clone returns a deep copy of p. A nil receiver yields nil, so callers
// can snapshot map entries without checking presence first.
func (p *Prompt) Clone() *Prompt {
	if p == nil {
		return nil
	}
	c := &Prompt{
		Versions: make([]Version, len(p.Versions)),
		Tags:     make(map[string]int, len(p.Tags)),
	}
	copy(c.Versions, p.Versions)
	for name, target := range p.Tags {
		c.Tags[name] = target
	}
	return c
}

func (v *Vault) prompt(key string) (*Prompt, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	p, ok := v.Prompts[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return p, nil
}

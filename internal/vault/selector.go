package vault

import "strconv"

type selectorKind int

const (
	selLatest selectorKind = iota
	selNumber
	selTag
)

// Selector names which version of a prompt to read: the latest one, an
// explicit version number, or a tag.
type Selector struct {
	kind   selectorKind
	number int
	tag    string
}

// Latest selects the highest version number.
func Latest() Selector {
	return Selector{kind: selLatest}
}

// Number selects an explicit version number.
func Number(n int) Selector {
	return Selector{kind: selNumber, number: n}
}

// TagName selects the version a tag points at.
func TagName(name string) Selector {
	return Selector{kind: selTag, tag: name}
}

// ParseSelector interprets a selector string from the CLI. A numeric parse
// is attempted first; anything non-numeric is treated as a tag name. Empty
// input or the literal "latest" selects the latest version.
func ParseSelector(s string) Selector {
	if s == "" || s == "latest" {
		return Latest()
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return Number(n)
	}
	return TagName(s)
}

func (s Selector) String() string {
	switch s.kind {
	case selNumber:
		return "v" + strconv.Itoa(s.number)
	case selTag:
		return s.tag
	default:
		return "latest"
	}
}

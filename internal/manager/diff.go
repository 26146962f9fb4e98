package manager

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/live-labs/promptvault/internal/vault"
)

// Diff renders a unified diff between two versions of a prompt.
// Returns an empty string when the contents are identical.
func (m *Manager) Diff(key string, from, to vault.Selector) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	older, err := m.vault.Get(key, from)
	if err != nil {
		return "", err
	}
	newer, err := m.vault.Get(key, to)
	if err != nil {
		return "", err
	}
	return renderUnifiedDiff(key, from, to, older, newer), nil
}

// renderUnifiedDiff produces patch output using go-diff line mode.
func renderUnifiedDiff(key string, from, to vault.Selector, older, newer string) string {
	if older == newer {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	a, b, lineArray := dmp.DiffLinesToChars(older, newer)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(older, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- %s@%s\n", key, from))
	result.WriteString(fmt.Sprintf("+++ %s@%s\n", key, to))
	result.WriteString(dmp.PatchToText(patches))
	return result.String()
}

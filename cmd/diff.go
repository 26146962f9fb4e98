package cmd

import (
	"fmt"

	"github.com/live-labs/promptvault/internal/vault"
)

// Diff prints a unified diff between two versions of a prompt. Selectors
// are version numbers, tag names, or "latest"; an empty "to" selector
// means latest.
func Diff(key, from, to string) {
	m := OpenManager()
	defer m.Close()

	selFrom := vault.ParseSelector(from)
	selTo := vault.ParseSelector(to)

	out, err := m.Diff(key, selFrom, selTo)
	if err != nil {
		HandleError(err)
	}

	if out == "" {
		fmt.Printf("No changes between %s and %s\n", selFrom, selTo)
		return
	}
	fmt.Print(out)
}

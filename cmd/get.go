package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/live-labs/promptvault/internal/vault"
)

// Get prints the selected version of a prompt, or writes it to output
// when non-empty. The selector is a version number, a tag name, or
// "latest".
func Get(key, selector, output string) {
	m := OpenManager()
	defer m.Close()

	content, err := m.Get(key, vault.ParseSelector(selector))
	if err != nil {
		HandleError(err)
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(content), 0600); err != nil {
			HandleError(fmt.Errorf("failed to write %s: %w", output, err))
		}
		fmt.Printf("Wrote %s\n", output)
		return
	}

	fmt.Print(content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Println()
	}
}

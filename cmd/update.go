package cmd

import (
	"fmt"
)

// Update appends a new version to an existing prompt and moves the dev
// tag to it. Content "-" or empty reads stdin.
func Update(key, content, message string) {
	m := OpenManager()
	defer m.Close()

	n, err := m.Update(key, readContent(content), message)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Updated %s to v%d (dev)\n", key, n)
}

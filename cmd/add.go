package cmd

import (
	"fmt"
)

// Add creates a new prompt under key. Content "-" or empty reads stdin.
func Add(key, content string) {
	m := OpenManager()
	defer m.Close()

	n, err := m.Add(key, readContent(content))
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Added %s v%d (dev)\n", key, n)
}

package cmd

import (
	"fmt"
)

// Promote points name at the latest version of key.
func Promote(key, name string) {
	m := OpenManager()
	defer m.Close()

	if err := m.Promote(key, name); err != nil {
		HandleError(err)
	}

	fmt.Printf("Promoted %s latest to %q\n", key, name)
}

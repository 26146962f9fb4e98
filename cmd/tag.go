package cmd

import (
	"fmt"
	"strconv"
)

// Tag points name at a version of key. An empty version argument means
// the latest version.
func Tag(key, name, version string) {
	m := OpenManager()
	defer m.Close()

	if version == "" {
		if err := m.Promote(key, name); err != nil {
			HandleError(err)
		}
		fmt.Printf("Tagged %s latest as %q\n", key, name)
		return
	}

	n, err := strconv.Atoi(version)
	if err != nil {
		HandleError(fmt.Errorf("invalid version number %q", version))
	}
	if err := m.Tag(key, name, n); err != nil {
		HandleError(err)
	}
	fmt.Printf("Tagged %s v%d as %q\n", key, n, name)
}

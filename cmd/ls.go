package cmd

import (
	"fmt"
	"strings"
)

// List prints every prompt key with its version count and tags.
func List() {
	m := OpenManager()
	defer m.Close()

	keys := m.Keys()
	if len(keys) == 0 {
		fmt.Println("Vault is empty")
		return
	}

	for _, key := range keys {
		infos, err := m.History(key)
		if err != nil {
			HandleError(err)
		}
		var tags []string
		for _, info := range infos {
			tags = append(tags, info.Tags...)
		}
		line := fmt.Sprintf("%-32s %d version(s)", key, len(infos))
		if len(tags) > 0 {
			line += "  [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Println(line)
	}
}

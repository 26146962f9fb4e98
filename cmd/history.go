package cmd

import (
	"fmt"
	"strings"
)

// History lists all versions of a prompt, oldest first.
func History(key string) {
	m := OpenManager()
	defer m.Close()

	infos, err := m.History(key)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("%s: %d version(s)\n", key, len(infos))
	for _, info := range infos {
		line := fmt.Sprintf("  v%-4d %s", info.Number, info.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		if len(info.Tags) > 0 {
			line += "  [" + strings.Join(info.Tags, ", ") + "]"
		}
		if info.Message != "" {
			line += "  " + info.Message
		}
		fmt.Println(line)
	}
}

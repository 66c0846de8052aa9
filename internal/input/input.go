// Package input provides helpers for reading flag values from stdin and files
// (@file syntax).
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ExpandText resolves a text flag value. "-" reads all of stdin, "@path"
// reads the file, anything else is returned as is. Trailing newlines are
// trimmed; inner line breaks are kept so markdown survives.
func ExpandText(value string, stdin io.Reader) (string, error) {
	switch {
	case value == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	case strings.HasPrefix(value, "@"):
		path := strings.TrimPrefix(value, "@")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return value, nil
}

package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desc.md")
	if err := os.WriteFile(path, []byte("# Keyboard\n\n- hot-swap\n\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		value   string
		stdin   string
		want    string
		wantErr bool
	}{
		{name: "literal", value: "plain text", want: "plain text"},
		{name: "empty", value: "", want: ""},
		{name: "stdin", value: "-", stdin: "line one\nline two\n", want: "line one\nline two"},
		{name: "file", value: "@" + path, want: "# Keyboard\n\n- hot-swap"},
		{name: "missing file", value: "@" + filepath.Join(dir, "nope.md"), wantErr: true},
		{name: "at sign inside text", value: "mail me@example.com", want: "mail me@example.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandText(tc.value, strings.NewReader(tc.stdin))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ExpandText(%q) = %q, want error", tc.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandText(%q): %v", tc.value, err)
			}
			if got != tc.want {
				t.Errorf("ExpandText(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

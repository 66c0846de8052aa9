package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigNonExistent(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "keymap.json"))
	if err != nil {
		t.Errorf("LoadConfig should not error on nonexistent file: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig should return non-nil config")
	}
	if cfg.Bindings == nil {
		t.Error("Bindings map should be initialized")
	}
}

func TestLoadAndSaveConfig(t *testing.T) {
	configPath := ConfigPath(t.TempDir())
	cfg := &Config{
		Bindings: map[string]string{
			"main:P":        "pick-price",
			"custom:ctrl+w": "custom-save",
		},
	}

	if err := SaveConfig(configPath, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if diff := cmp.Diff(cfg.Bindings, loaded.Bindings); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keymap.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestApplyConfig(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	warnings := ApplyConfig(r, &Config{
		Bindings: map[string]string{
			"main:P":   "pick-price",
			"custom:w": "custom-sav",
			"detial:x": "close",
			"main:":    "quit",
		},
	})

	r.mu.RLock()
	cmd, ok := r.userOverrides["main:P"]
	r.mu.RUnlock()
	if !ok || cmd != CmdPickPrice {
		t.Errorf("override main:P = %q, %v", cmd, ok)
	}

	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %v", warnings)
	}
	joined := strings.Join(warnings, "\n")
	for _, want := range []string{`did you mean "custom-save"`, `did you mean "detail"`, "empty key"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q:\n%s", want, joined)
		}
	}
}

func TestConfigPath(t *testing.T) {
	got := ConfigPath("/home/user/shop")
	want := filepath.Join("/home/user/shop", ".starterkit", "keymap.json")
	if got != want {
		t.Errorf("ConfigPath() = %s, want %s", got, want)
	}
}

func TestParseBinding(t *testing.T) {
	tests := []struct {
		input   string
		context Context
		key     string
	}{
		{"main:ctrl+d", ContextMain, "ctrl+d"},
		{"custom:esc", ContextCustom, "esc"},
		{"global:q", ContextGlobal, "q"},
		{"j", ContextGlobal, "j"},
		{":", ContextGlobal, ":"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctx, key := parseBinding(tt.input)
			if ctx != tt.context {
				t.Errorf("parseBinding(%s) context = %s, want %s", tt.input, ctx, tt.context)
			}
			if key != tt.key {
				t.Errorf("parseBinding(%s) key = %s, want %s", tt.input, key, tt.key)
			}
		})
	}
}

func TestExampleConfigApplies(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if warnings := ApplyConfig(r, ExampleConfig()); len(warnings) != 0 {
		t.Errorf("example config produced warnings: %v", warnings)
	}
}

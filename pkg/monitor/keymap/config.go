// Package keymap provides user-configurable key bindings for the dashboard,
// loaded from .starterkit/keymap.json.
package keymap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
)

// Config represents user key binding configuration.
// Stored in .starterkit/keymap.json
type Config struct {
	// Bindings maps "context:key" to command ID
	// Example: {"main:P": "pick-price", "custom:ctrl+w": "custom-save"}
	Bindings map[string]string `json:"bindings"`
}

// ConfigPath returns the path to the keymap config file
func ConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ".starterkit", "keymap.json")
}

// LoadConfig loads key binding overrides from a JSON file.
// Returns an empty config if the file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Bindings: make(map[string]string)}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string]string)
	}
	return &cfg, nil
}

// SaveConfig saves the config to a JSON file.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user overrides to the registry. Entries naming an
// unknown context or command are skipped and reported as warnings, with a
// suggestion when the name looks like a typo.
func ApplyConfig(r *Registry, cfg *Config) []string {
	var warnings []string
	contexts := make([]string, 0, len(Contexts()))
	for _, c := range Contexts() {
		contexts = append(contexts, string(c))
	}
	commands := make([]string, 0, len(AllCommands()))
	for _, c := range AllCommands() {
		commands = append(commands, string(c))
	}

	for binding, cmdStr := range cfg.Bindings {
		ctx, key := parseBinding(binding)
		if key == "" {
			warnings = append(warnings, fmt.Sprintf("keymap %q: empty key", binding))
			continue
		}
		if !isKnownContext(ctx) {
			warnings = append(warnings, unknownMsg("context", string(ctx), binding, contexts))
			continue
		}
		if !IsValidCommand(Command(cmdStr)) {
			warnings = append(warnings, unknownMsg("command", cmdStr, binding, commands))
			continue
		}
		r.SetUserOverride(ctx, key, Command(cmdStr))
	}
	return warnings
}

func isKnownContext(ctx Context) bool {
	for _, c := range Contexts() {
		if c == ctx {
			return true
		}
	}
	return false
}

func unknownMsg(kind, name, binding string, valid []string) string {
	msg := fmt.Sprintf("keymap %q: unknown %s %q", binding, kind, name)
	if s := suggest.Closest(name, valid); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}

// parseBinding parses a "context:key" string into context and key parts.
// Without a colon the binding is global.
func parseBinding(s string) (Context, string) {
	if ctx, key, ok := strings.Cut(s, ":"); ok && ctx != "" {
		return Context(ctx), key
	}
	return ContextGlobal, s
}

// ExampleConfig returns an example configuration for documentation
func ExampleConfig() *Config {
	return &Config{
		Bindings: map[string]string{
			"main:P":        "pick-price",
			"custom:ctrl+w": "custom-save",
			"global:ctrl+q": "quit",
		},
	}
}

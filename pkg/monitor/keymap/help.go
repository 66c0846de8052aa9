package keymap

import (
	"fmt"
	"strings"
)

var contextTitles = map[Context]string{
	ContextGlobal: "GLOBAL",
	ContextMain:   "PRODUCTS",
	ContextSearch: "SEARCH",
	ContextPicker: "PRESET PICKER",
	ContextCustom: "CUSTOM RANGE",
	ContextDetail: "PRODUCT DETAIL",
	ContextHelp:   "HELP",
}

// GenerateHelp renders every context's bindings, merging keys that run the
// same command. User overrides are listed with their context.
func (r *Registry) GenerateHelp() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("DASHBOARD - Key Bindings\n")

	for _, ctx := range Contexts() {
		if ctx == ContextHelp {
			continue
		}
		bindings := r.bindings[ctx]
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s:\n", contextTitles[ctx])

		var order []Command
		keys := map[Command][]string{}
		desc := map[Command]string{}
		for _, b := range bindings {
			if _, seen := keys[b.Command]; !seen {
				order = append(order, b.Command)
				desc[b.Command] = b.Description
			}
			keys[b.Command] = append(keys[b.Command], formatKey(b.Key))
		}
		for _, cmd := range order {
			fmt.Fprintf(&sb, "  %-20s %s\n", strings.Join(keys[cmd], " / "), desc[cmd])
		}
	}

	if len(r.userOverrides) > 0 {
		sb.WriteString("\nCUSTOM (keymap.json):\n")
		for k, cmd := range r.userOverrides {
			ctx, key, _ := strings.Cut(k, ":")
			fmt.Fprintf(&sb, "  %-20s %s (%s)\n", formatKey(key), cmd, ctx)
		}
	}
	return sb.String()
}

// formatKey formats a key string for display
func formatKey(key string) string {
	replacements := []struct{ old, new string }{
		{"shift+tab", "Shift+Tab"},
		{"ctrl+", "Ctrl+"},
		{"up", "↑"},
		{"down", "↓"},
		{"enter", "Enter"},
		{"esc", "Esc"},
		{"tab", "Tab"},
		{"home", "Home"},
		{"end", "End"},
	}
	result := key
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.old, r.new)
	}
	return result
}

package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextMain   Context = "main"
	ContextSearch Context = "search"
	ContextPicker Context = "picker" // preset picker open
	ContextCustom Context = "custom" // custom range dialog open
	ContextDetail Context = "detail" // product detail modal open
	ContextHelp   Context = "help"
)

// Contexts lists every context in help order.
func Contexts() []Context {
	return []Context{ContextGlobal, ContextMain, ContextSearch, ContextPicker, ContextCustom, ContextDetail, ContextHelp}
}

// Command represents a named command that can be triggered by key bindings
type Command string

const (
	// Global
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Table navigation
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdHalfPageDown Command = "half-page-down"
	CmdHalfPageUp   Command = "half-page-up"

	// Catalog actions
	CmdOpenDetails    Command = "open-details"
	CmdRefresh        Command = "refresh"
	CmdSearch         Command = "search"
	CmdCycleCategory  Command = "cycle-category"
	CmdCycleSortMode  Command = "cycle-sort-mode"
	CmdClearFilters   Command = "clear-filters"
	CmdPickPrice      Command = "pick-price"
	CmdPickStock      Command = "pick-stock"
	CmdFocusNextRange Command = "focus-next-filter"
	CmdStepPrev       Command = "step-prev"
	CmdStepNext       Command = "step-next"

	// Search
	CmdSearchConfirm Command = "search-confirm"
	CmdSearchCancel  Command = "search-cancel"
	CmdSearchClear   Command = "search-clear"

	// Preset picker
	CmdPickerCancel Command = "picker-cancel"

	// Custom range dialog
	CmdCustomSave   Command = "custom-save"
	CmdCustomReset  Command = "custom-reset"
	CmdCustomCancel Command = "custom-cancel"

	// Detail and help modals
	CmdScrollDown Command = "scroll-down"
	CmdScrollUp   Command = "scroll-up"
	CmdClose      Command = "close"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "tab", "ctrl+d", "g g"
	Command     Command // Command ID
	Context     Context
	Description string // Human-readable description for help text
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding // context -> bindings
	userOverrides map[string]Command    // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for a key in the active context, falling back
// to global bindings. Checks: user overrides -> context -> global.
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	if r.pendingKey != "" {
		if time.Since(r.pendingTime) < sequenceTimeout {
			seq := r.pendingKey + " " + keyStr
			r.pendingKey = ""
			if cmd, found := r.findCommand(seq, activeContext, true); found {
				return cmd, true
			}
			// Sequence didn't match, try just the new key
		} else {
			r.pendingKey = ""
		}
	}

	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = time.Now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext, true)
}

// LookupLocal is Lookup without the global fallback or key sequences. Text
// entry contexts use it so printable keys like "q" reach the input.
func (r *Registry) LookupLocal(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findCommand(KeyToString(key), activeContext, false)
}

func (r *Registry) findCommand(key string, activeContext Context, global bool) (Command, bool) {
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}
	if !global {
		return "", false
	}
	if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
		return cmd, true
	}
	return r.findInContext(key, ContextGlobal)
}

func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// isSequenceStart checks if this key could start a multi-key sequence
func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "

	contexts := []Context{ContextGlobal}
	if activeContext != "" && activeContext != ContextGlobal {
		contexts = append(contexts, activeContext)
	}
	for _, ctx := range contexts {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
	}

	for k := range r.userOverrides {
		_, bound, ok := strings.Cut(k, ":")
		if ok && strings.HasPrefix(bound, prefix) {
			return true
		}
	}
	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the current pending key (for UI display)
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && time.Since(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// BindingsForContext returns the bindings of a context followed by the
// global ones.
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	result = append(result, r.bindings[context]...)
	if context != ContextGlobal {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

// KeysFor returns the keys bound to cmd in context, user overrides first.
func (r *Registry) KeysFor(cmd Command, context Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	for k, c := range r.userOverrides {
		ctx, key, _ := strings.Cut(k, ":")
		if c == cmd && Context(ctx) == context {
			keys = append(keys, key)
		}
	}
	for _, b := range r.bindings[context] {
		if b.Command == cmd {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// KeyToString converts a tea.KeyMsg to the string form used in bindings
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if key.Alt {
			return "alt+" + string(key.Runes)
		}
		return string(key.Runes)
	default:
		// Bubble Tea already names control keys "ctrl+s", "esc", "enter",
		// "shift+tab", "pgdown" and so on.
		return key.String()
	}
}

// IsPrintable returns true if the key represents a printable character
func IsPrintable(key tea.KeyMsg) bool {
	if key.Type != tea.KeyRunes || len(key.Runes) != 1 {
		return false
	}
	r := key.Runes[0]
	return r >= ' ' && r <= '~'
}

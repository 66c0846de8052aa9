package keymap

// DefaultBindings returns the default key bindings for the dashboard.
func DefaultBindings() []Binding {
	return []Binding{
		// Global
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// Product table
		{Key: "j", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "ctrl+d", Command: CmdHalfPageDown, Context: ContextMain, Description: "Half page down"},
		{Key: "ctrl+u", Command: CmdHalfPageUp, Context: ContextMain, Description: "Half page up"},
		{Key: "enter", Command: CmdOpenDetails, Context: ContextMain, Description: "Product details"},
		{Key: "r", Command: CmdRefresh, Context: ContextMain, Description: "Refresh"},
		{Key: "/", Command: CmdSearch, Context: ContextMain, Description: "Search"},
		{Key: "esc", Command: CmdSearchClear, Context: ContextMain, Description: "Clear search"},
		{Key: "c", Command: CmdCycleCategory, Context: ContextMain, Description: "Cycle category"},
		{Key: "S", Command: CmdCycleSortMode, Context: ContextMain, Description: "Cycle sort mode"},
		{Key: "x", Command: CmdClearFilters, Context: ContextMain, Description: "Clear all filters"},

		// Range filters
		{Key: "p", Command: CmdPickPrice, Context: ContextMain, Description: "Pick price preset"},
		{Key: "s", Command: CmdPickStock, Context: ContextMain, Description: "Pick stock preset"},
		{Key: "tab", Command: CmdFocusNextRange, Context: ContextMain, Description: "Switch focused filter"},
		{Key: "[", Command: CmdStepPrev, Context: ContextMain, Description: "Previous preset"},
		{Key: "]", Command: CmdStepNext, Context: ContextMain, Description: "Next preset"},

		// Search input
		{Key: "enter", Command: CmdSearchConfirm, Context: ContextSearch, Description: "Apply search"},
		{Key: "esc", Command: CmdSearchCancel, Context: ContextSearch, Description: "Cancel search"},
		{Key: "ctrl+u", Command: CmdSearchClear, Context: ContextSearch, Description: "Clear search text"},

		// Preset picker
		{Key: "esc", Command: CmdPickerCancel, Context: ContextPicker, Description: "Close picker"},

		// Custom range dialog
		{Key: "ctrl+s", Command: CmdCustomSave, Context: ContextCustom, Description: "Save range"},
		{Key: "ctrl+r", Command: CmdCustomReset, Context: ContextCustom, Description: "Reset fields"},
		{Key: "esc", Command: CmdCustomCancel, Context: ContextCustom, Description: "Cancel"},

		// Product detail
		{Key: "esc", Command: CmdClose, Context: ContextDetail, Description: "Close"},
		{Key: "enter", Command: CmdClose, Context: ContextDetail, Description: "Close"},
		{Key: "j", Command: CmdScrollDown, Context: ContextDetail, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextDetail, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextDetail, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextDetail, Description: "Scroll up"},

		// Help
		{Key: "esc", Command: CmdClose, Context: ContextHelp, Description: "Close help"},
		{Key: "j", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}

// AllCommands returns every command in declaration order.
func AllCommands() []Command {
	return []Command{
		CmdQuit, CmdToggleHelp,
		CmdCursorDown, CmdCursorUp, CmdCursorTop, CmdCursorBottom, CmdHalfPageDown, CmdHalfPageUp,
		CmdOpenDetails, CmdRefresh, CmdSearch, CmdCycleCategory, CmdCycleSortMode, CmdClearFilters,
		CmdPickPrice, CmdPickStock, CmdFocusNextRange, CmdStepPrev, CmdStepNext,
		CmdSearchConfirm, CmdSearchCancel, CmdSearchClear,
		CmdPickerCancel,
		CmdCustomSave, CmdCustomReset, CmdCustomCancel,
		CmdScrollDown, CmdScrollUp, CmdClose,
	}
}

// IsValidCommand reports whether cmd is a known command.
func IsValidCommand(cmd Command) bool {
	for _, c := range AllCommands() {
		if c == cmd {
			return true
		}
	}
	return false
}

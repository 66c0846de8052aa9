package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// handleKey processes key input using the centralized keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	switch ctx {
	case keymap.ContextSearch, keymap.ContextPicker, keymap.ContextCustom:
		// Text entry: only the context's own bindings apply, so printable
		// keys reach the input. ctrl+c still quits.
		if msg.Type == tea.KeyCtrlC {
			return m.executeCommand(keymap.CmdQuit)
		}
		if cmd, found := m.Keymap.LookupLocal(msg, ctx); found {
			return m.executeCommand(cmd)
		}
		return m.forwardToFocused(msg)
	}

	cmd, found := m.Keymap.Lookup(msg, ctx)
	if !found {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// forwardToFocused hands a message to the open form or input
func (m Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.Custom != nil:
		return m.updateCustom(msg)
	case m.Picker != nil:
		return m.updatePicker(msg)
	case m.SearchMode:
		var inputCmd tea.Cmd
		m.SearchInput, inputCmd = m.SearchInput.Update(msg)
		// Search is live: refetch as the query changes
		if q := m.SearchInput.Value(); q != m.Filter.Search {
			m.Filter.Search = q
			m.Filter.Offset = 0
			return m, tea.Batch(inputCmd, m.fetchProducts())
		}
		return m, inputCmd
	case m.Detail != nil:
		var vpCmd tea.Cmd
		m.Detail.Viewport, vpCmd = m.Detail.Viewport.Update(msg)
		return m, vpCmd
	}
	return m, nil
}

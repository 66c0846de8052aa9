package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// executeCommand runs a keymap command against the model
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	// Global
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.HelpOpen = !m.HelpOpen
		if m.HelpOpen {
			m.help = newHelpViewport(m.Keymap.GenerateHelp(), m.modalWidth(), m.modalHeight())
		}
		return m, nil

	// Table navigation
	case keymap.CmdCursorDown:
		m.table.MoveDown(1)
		return m, nil

	case keymap.CmdCursorUp:
		m.table.MoveUp(1)
		return m, nil

	case keymap.CmdCursorTop:
		m.table.GotoTop()
		return m, nil

	case keymap.CmdCursorBottom:
		m.table.GotoBottom()
		return m, nil

	case keymap.CmdHalfPageDown:
		m.table.MoveDown(max(m.table.Height()/2, 1))
		return m, nil

	case keymap.CmdHalfPageUp:
		m.table.MoveUp(max(m.table.Height()/2, 1))
		return m, nil

	// Catalog actions
	case keymap.CmdOpenDetails:
		return m.openDetail()

	case keymap.CmdRefresh:
		m.setStatus("refreshing", false)
		return m, tea.Batch(m.fetchProducts(), m.fetchCategories(), m.fetchStats())

	case keymap.CmdSearch:
		m.SearchMode = true
		m.searchBefore = m.Filter.Search
		m.SearchInput.SetValue(m.Filter.Search)
		m.SearchInput.CursorEnd()
		return m, m.SearchInput.Focus()

	case keymap.CmdCycleCategory:
		return m.cycleCategory()

	case keymap.CmdCycleSortMode:
		return m.cycleSortMode()

	case keymap.CmdClearFilters:
		return m.clearFilters()

	// Range filters
	case keymap.CmdPickPrice:
		return m.openPicker(rangefilter.DomainPrice)

	case keymap.CmdPickStock:
		return m.openPicker(rangefilter.DomainStock)

	case keymap.CmdFocusNextRange:
		return m.toggleFocus()

	case keymap.CmdStepPrev:
		return m.stepFocused(-1)

	case keymap.CmdStepNext:
		return m.stepFocused(1)

	// Search
	case keymap.CmdSearchConfirm:
		m.SearchMode = false
		m.SearchInput.Blur()
		return m, m.persistFilters()

	case keymap.CmdSearchCancel:
		m.SearchMode = false
		m.SearchInput.Blur()
		m.SearchInput.SetValue(m.searchBefore)
		if m.Filter.Search == m.searchBefore {
			return m, nil
		}
		m.Filter.Search = m.searchBefore
		return m.refilter()

	case keymap.CmdSearchClear:
		m.SearchInput.SetValue("")
		if m.Filter.Search == "" {
			return m, nil
		}
		m.Filter.Search = ""
		if m.SearchMode {
			// Persisted on confirm
			return m, m.fetchProducts()
		}
		m.setStatus("search cleared", false)
		return m.refilter()

	// Preset picker
	case keymap.CmdPickerCancel:
		m.Picker = nil
		return m, nil

	// Custom range dialog
	case keymap.CmdCustomSave:
		if m.Custom == nil {
			return m, nil
		}
		return m.saveCustom()

	case keymap.CmdCustomReset:
		if m.Custom == nil {
			return m, nil
		}
		return m.resetCustom()

	case keymap.CmdCustomCancel:
		if m.Custom == nil {
			return m, nil
		}
		return m.cancelCustom()

	// Detail and help
	case keymap.CmdScrollDown:
		if m.HelpOpen {
			m.help.LineDown(1)
		} else if m.Detail != nil {
			m.Detail.Viewport.LineDown(1)
		}
		return m, nil

	case keymap.CmdScrollUp:
		if m.HelpOpen {
			m.help.LineUp(1)
		} else if m.Detail != nil {
			m.Detail.Viewport.LineUp(1)
		}
		return m, nil

	case keymap.CmdClose:
		if m.HelpOpen {
			m.HelpOpen = false
		} else {
			m.Detail = nil
		}
		return m, nil
	}

	return m, nil
}

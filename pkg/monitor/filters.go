package monitor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// commitQueue collects ranges the controls commit during one Update and
// replays them as FilterCommittedMsg.
type commitQueue struct {
	pending []FilterCommittedMsg
}

// onChange returns the change callback for a domain's control.
func (q *commitQueue) onChange(domain string) func(rangefilter.Range) {
	return func(r rangefilter.Range) {
		q.pending = append(q.pending, FilterCommittedMsg{Domain: domain, Range: r})
	}
}

// drain returns a command delivering every queued commit, or nil.
func (q *commitQueue) drain() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.pending))
	for _, msg := range q.pending {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	q.pending = nil
	return tea.Batch(cmds...)
}

// applyCommit stores a committed range, pushes it back into its control,
// persists the filter and refetches.
func (m Model) applyCommit(msg FilterCommittedMsg) (tea.Model, tea.Cmd) {
	ctrl := m.control(msg.Domain)
	if ctrl == nil {
		return m, nil
	}
	switch msg.Domain {
	case rangefilter.DomainPrice:
		m.Filter.Price = msg.Range
	case rangefilter.DomainStock:
		m.Filter.Stock = msg.Range
	}
	m.Filter.Offset = 0
	ctrl.SetValue(msg.Range)

	d := ctrl.Domain()
	m.Logger.Info("filter committed", "domain", d.Name, "preset", ctrl.Selected(), "range", msg.Range.String())
	m.setStatus(fmt.Sprintf("%s filter: %s (%s)", d.Name, d.Label(ctrl.Selected()), d.Describe(msg.Range)), false)
	return m, tea.Batch(m.fetchProducts(), m.persistFilters())
}

// restoreFilterState returns a command that loads the saved filter state
func (m Model) restoreFilterState() tea.Cmd {
	baseDir := m.BaseDir
	return func() tea.Msg {
		if baseDir == "" {
			return RestoreFilterMsg{}
		}
		state, err := config.GetFilterState(baseDir)
		return RestoreFilterMsg{State: state, Err: err}
	}
}

// restoreFilter applies saved state on launch. Ranges that no longer
// validate are dropped rather than shown.
func (m Model) restoreFilter(msg RestoreFilterMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Logger.Warn("restore filter state", "err", msg.Err)
		m.setStatus("saved filters unreadable: "+msg.Err.Error(), true)
	}
	s := msg.State
	if err := m.price.Domain().Validate(s.Price); err != nil {
		m.Logger.Warn("dropping saved price range", "err", err)
		s.Price = rangefilter.Range{}
	}
	if err := m.stock.Domain().Validate(s.Stock); err != nil {
		m.Logger.Warn("dropping saved stock range", "err", err)
		s.Stock = rangefilter.Range{}
	}

	m.Filter.Price = s.Price
	m.Filter.Stock = s.Stock
	m.Filter.CategoryID = s.CategoryID
	m.Filter.Search = s.Search
	m.SortMode = SortModeFromString(s.SortMode)
	m.SortMode.Apply(&m.Filter)
	m.price.SetValue(s.Price)
	m.stock.SetValue(s.Stock)
	m.SearchInput.SetValue(s.Search)
	return m, m.fetchProducts()
}

// persistFilters returns a command that saves the committed filter
func (m Model) persistFilters() tea.Cmd {
	if m.BaseDir == "" {
		return nil
	}
	baseDir, state := m.BaseDir, m.filterState()
	return func() tea.Msg {
		if err := config.SetFilterState(baseDir, state); err != nil {
			return statusMsg{Text: "save filters: " + err.Error(), IsError: true}
		}
		return nil
	}
}

// refilter refetches after an owner-side filter change and saves it.
func (m Model) refilter() (tea.Model, tea.Cmd) {
	m.Filter.Offset = 0
	return m, tea.Batch(m.fetchProducts(), m.persistFilters())
}

// clearFilters resets every filter to "all" and the sort to newest.
func (m Model) clearFilters() (tea.Model, tea.Cmd) {
	m.Filter.Price = rangefilter.Range{}
	m.Filter.Stock = rangefilter.Range{}
	m.Filter.CategoryID = ""
	m.Filter.Search = ""
	m.SortMode = SortNewest
	m.SortMode.Apply(&m.Filter)
	m.price.SetValue(rangefilter.Range{})
	m.stock.SetValue(rangefilter.Range{})
	m.SearchInput.SetValue("")
	m.setStatus("filters cleared", false)
	return m.refilter()
}

// cycleCategory moves the category filter to the next category, wrapping
// through "all".
func (m Model) cycleCategory() (tea.Model, tea.Cmd) {
	if len(m.Categories) == 0 {
		m.setStatus("no categories", false)
		return m, nil
	}
	next := 0
	for i, c := range m.Categories {
		if c.ID == m.Filter.CategoryID {
			next = i + 1
			break
		}
	}
	if next >= len(m.Categories) {
		m.Filter.CategoryID = ""
		m.setStatus("category: all", false)
	} else {
		m.Filter.CategoryID = m.Categories[next].ID
		m.setStatus("category: "+m.Categories[next].Name, false)
	}
	return m.refilter()
}

// cycleSortMode advances the table ordering
func (m Model) cycleSortMode() (tea.Model, tea.Cmd) {
	m.SortMode = m.SortMode.Next()
	m.SortMode.Apply(&m.Filter)
	m.setStatus("sort: "+m.SortMode.String(), false)
	return m.refilter()
}

// toggleFocus switches the filter the step keys act on
func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == rangefilter.DomainPrice {
		m.focus = rangefilter.DomainStock
	} else {
		m.focus = rangefilter.DomainPrice
	}
	return m, nil
}

// stepFocused commits the neighbouring preset of the focused filter
func (m Model) stepFocused(delta int) (tea.Model, tea.Cmd) {
	m.control(m.focus).Step(delta)
	return m, m.commits.drain()
}

// openPicker opens the preset picker for a domain
func (m Model) openPicker(domain string) (tea.Model, tea.Cmd) {
	ctrl := m.control(domain)
	if ctrl == nil {
		return m, nil
	}
	m.focus = domain
	m.Picker = newPickerState(ctrl, m.formWidth())
	return m, m.Picker.Form.Init()
}

// pickPreset applies a picker choice. Fixed presets commit at once; the
// custom entry opens the range dialog.
func (m Model) pickPreset(domain, id string) (tea.Model, tea.Cmd) {
	m.Picker = nil
	ctrl := m.control(domain)
	if ctrl == nil {
		return m, nil
	}
	if err := ctrl.Choose(id); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	if ctrl.State() != rangefilter.Closed {
		m.Custom = newCustomState(ctrl, m.formWidth())
		return m, m.Custom.Form.Init()
	}
	return m, m.commits.drain()
}

// saveCustom hands the dialog's text to the control. A rejected range
// rebuilds the form with the error shown; an accepted one closes it.
func (m Model) saveCustom() (tea.Model, tea.Cmd) {
	cs := m.Custom
	ctrl := m.control(cs.Domain)
	if err := ctrl.SetDraft(cs.MinText, cs.MaxText); err != nil {
		m.Custom = nil
		return m, nil
	}
	if err := ctrl.Save(); err != nil {
		m.Logger.Debug("custom range rejected", "domain", cs.Domain, "err", err)
		cs.build(ctrl.Draft().Err, m.formWidth())
		return m, cs.Form.Init()
	}
	m.Custom = nil
	return m, m.commits.drain()
}

// resetCustom empties the dialog fields without closing it
func (m Model) resetCustom() (tea.Model, tea.Cmd) {
	cs := m.Custom
	m.control(cs.Domain).ResetDraft()
	cs.MinText, cs.MaxText = "", ""
	cs.build(nil, m.formWidth())
	return m, cs.Form.Init()
}

// cancelCustom discards the dialog
func (m Model) cancelCustom() (tea.Model, tea.Cmd) {
	m.control(m.Custom.Domain).Cancel()
	m.Custom = nil
	return m, nil
}

// updatePicker forwards a message to the picker form and applies the
// choice once the form completes
func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.Picker.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Picker.Form = f
	}
	switch m.Picker.Form.State {
	case huh.StateCompleted:
		return m.pickPreset(m.Picker.Domain, m.Picker.Choice)
	case huh.StateAborted:
		m.Picker = nil
		return m, nil
	}
	return m, cmd
}

// updateCustom forwards a message to the custom range form. Completing the
// form (enter on the last field) saves.
func (m Model) updateCustom(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.Custom.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Custom.Form = f
	}
	switch m.Custom.Form.State {
	case huh.StateCompleted:
		return m.saveCustom()
	case huh.StateAborted:
		return m.cancelCustom()
	}
	return m, cmd
}

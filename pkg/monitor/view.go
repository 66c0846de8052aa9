package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// Smallest terminal the full layout is drawn for
const (
	MinWidth  = 60
	MinHeight = 12
)

// chromeHeight counts the lines around the table: header, filter bar,
// query bar and footer.
const chromeHeight = 4

// resize fits the table and open viewports to the window
func (m *Model) resize() {
	m.table.SetColumns(productColumns(m.Width))
	m.table.SetWidth(m.Width)
	m.table.SetHeight(max(m.Height-chromeHeight, 3))
	if m.Detail != nil {
		m.Detail.Viewport.Width = m.modalWidth() - 4
		m.Detail.Viewport.Height = m.modalHeight() - 2
	}
	if m.HelpOpen {
		m.help.Width = m.modalWidth() - 4
		m.help.Height = m.modalHeight() - 2
	}
	if m.Picker != nil {
		m.Picker.Form = m.Picker.Form.WithWidth(m.formWidth())
	}
	if m.Custom != nil {
		m.Custom.Form = m.Custom.Form.WithWidth(m.formWidth())
	}
}

func (m Model) modalWidth() int {
	return min(max(m.Width-4, 30), 76)
}

func (m Model) modalHeight() int {
	return min(max(m.Height-4, 8), 24)
}

func (m Model) formWidth() int {
	return m.modalWidth() - 4
}

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFilterBar(),
		m.renderQueryBar(),
		m.renderBody(),
		m.renderFooter(),
	)

	if overlay := m.renderOverlay(); overlay != "" {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")))
	}
	return base
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder
	s.WriteString("starterkit dashboard (resize for full view)\n\n")
	for _, ctrl := range []*rangefilter.Control{m.price, m.stock} {
		d := ctrl.Domain()
		fmt.Fprintf(&s, "%s: %s\n", titleCase.String(d.Name), d.Label(ctrl.Selected()))
	}
	fmt.Fprintf(&s, "Products: %d\n", m.Total)
	s.WriteString("\nq:quit ?:help")
	return s.String()
}

// renderHeader renders the title line with catalog stats
func (m Model) renderHeader() string {
	title := titleStyle.Render("starterkit")
	if m.Version != "" {
		title += " " + subtleStyle.Render(m.Version)
	}

	var stats string
	if st := m.Stats; st != nil {
		parts := []string{fmt.Sprintf("%d products", st.Total)}
		if st.OutOfStock > 0 {
			parts = append(parts, errorStyle.Render(fmt.Sprintf("%d out of stock", st.OutOfStock)))
		}
		if st.LowStock > 0 {
			parts = append(parts, warningStyle.Render(fmt.Sprintf("%d low", st.LowStock)))
		}
		parts = append(parts, "inventory "+m.price.Domain().Format(st.InventoryValue))
		stats = strings.Join(parts, subtleStyle.Render(" · "))
	}
	return m.spread(title, stats)
}

// renderFilterBar shows each range filter's resolved preset and range
func (m Model) renderFilterBar() string {
	return " " + m.renderRangeFilter(m.price) + "   " + m.renderRangeFilter(m.stock)
}

func (m Model) renderRangeFilter(ctrl *rangefilter.Control) string {
	d := ctrl.Domain()
	marker := "  "
	if d.Name == m.focus {
		marker = focusedFilterStyle.Render("▸") + " "
	}
	return fmt.Sprintf("%s%s %s %s",
		marker,
		filterLabelStyle.Render(titleCase.String(d.Name)+":"),
		presetStyle.Render(d.Label(ctrl.Selected())),
		subtleStyle.Render("("+d.Describe(ctrl.Value())+")"))
}

// renderQueryBar shows category, sort and search, or the search input
// while typing
func (m Model) renderQueryBar() string {
	var left string
	if m.SearchMode {
		left = " / " + m.SearchInput.View()
	} else {
		category := "all"
		if m.Filter.CategoryID != "" {
			category = m.categoryName(m.Filter.CategoryID)
		}
		parts := []string{
			subtleStyle.Render("Category: ") + category,
			subtleStyle.Render("Sort: ") + m.SortMode.String(),
		}
		if m.Filter.Search != "" {
			parts = append(parts, subtleStyle.Render("Search: ")+m.Filter.Search)
		}
		left = " " + strings.Join(parts, "   ")
	}

	count := ""
	if m.Loaded {
		count = subtleStyle.Render(fmt.Sprintf("%d of %d", len(m.Products), m.Total))
	}
	return m.spread(left, count)
}

// renderBody renders the product table, an error, or the empty state
func (m Model) renderBody() string {
	height := max(m.Height-chromeHeight, 3)
	box := lipgloss.NewStyle().Height(height).Padding(0, 1)
	switch {
	case m.Err != nil:
		return box.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.Err)) + "\n\n" +
			subtleStyle.Render("Press r to retry, q to quit"))
	case !m.Loaded:
		return box.Render(subtleStyle.Render("Loading products..."))
	case len(m.Products) == 0:
		return box.Render(subtleStyle.Render("No products match the current filters. Press x to clear them."))
	}
	return m.table.View()
}

// renderFooter renders the status message or key hints and refresh time
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMessage != "" && m.StatusIsError:
		left = errorStyle.Render(m.StatusMessage)
	case m.StatusMessage != "":
		left = successStyle.Render(m.StatusMessage)
	default:
		left = helpStyle.Render(m.footerHints())
	}
	if pk := m.Keymap.PendingKey(); pk != "" {
		left = warningStyle.Render(pk+"-") + " " + left
	}

	right := ""
	if !m.LastRefresh.IsZero() {
		right = timestampStyle.Render("Last: " + m.LastRefresh.Format("15:04:05"))
	}
	return m.spread(left, right)
}

// footerHints lists the most useful keys for the current context, using
// whatever keys are bound to them
func (m Model) footerHints() string {
	type hint struct {
		cmd   keymap.Command
		label string
	}
	var hints []hint
	ctx := m.currentContext()
	switch ctx {
	case keymap.ContextSearch:
		hints = []hint{{keymap.CmdSearchConfirm, "apply"}, {keymap.CmdSearchCancel, "cancel"}, {keymap.CmdSearchClear, "clear"}}
	case keymap.ContextPicker:
		hints = []hint{{keymap.CmdPickerCancel, "close"}}
	case keymap.ContextCustom:
		hints = []hint{{keymap.CmdCustomSave, "save"}, {keymap.CmdCustomReset, "reset"}, {keymap.CmdCustomCancel, "cancel"}}
	case keymap.ContextDetail, keymap.ContextHelp:
		hints = []hint{{keymap.CmdScrollDown, "down"}, {keymap.CmdScrollUp, "up"}, {keymap.CmdClose, "close"}}
	default:
		hints = []hint{
			{keymap.CmdPickPrice, "price"}, {keymap.CmdPickStock, "stock"},
			{keymap.CmdStepNext, "next preset"}, {keymap.CmdFocusNextRange, "focus"},
			{keymap.CmdSearch, "search"}, {keymap.CmdCycleCategory, "category"},
			{keymap.CmdCycleSortMode, "sort"}, {keymap.CmdClearFilters, "clear"},
			{keymap.CmdOpenDetails, "details"},
		}
	}
	hints = append(hints, hint{keymap.CmdToggleHelp, "help"}, hint{keymap.CmdQuit, "quit"})

	var parts []string
	for _, h := range hints {
		keys := m.Keymap.KeysFor(h.cmd, ctx)
		if len(keys) == 0 {
			keys = m.Keymap.KeysFor(h.cmd, keymap.ContextGlobal)
		}
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+h.label)
	}
	return strings.Join(parts, "  ")
}

// renderOverlay renders the topmost open modal, or ""
func (m Model) renderOverlay() string {
	width := m.modalWidth()
	frame := func(title, body string) string {
		return modalStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, modalTitleStyle.Render(title), body))
	}

	switch {
	case m.HelpOpen:
		return frame("Key Bindings", m.help.View())
	case m.Detail != nil:
		d := m.Detail
		title := d.ProductID
		if d.Product != nil {
			title = d.Product.Name + "  " + formatStatus(d.Product.Status)
		}
		if d.Loading {
			return frame(title, subtleStyle.Render("Loading..."))
		}
		return frame(title, d.Viewport.View())
	case m.Custom != nil:
		return frame("Custom range", m.Custom.Form.View())
	case m.Picker != nil:
		return frame("Choose preset", m.Picker.Form.View())
	}
	return ""
}

// spread places left and right on one line of the window width, cutting
// the line when it does not fit
func (m Model) spread(left, right string) string {
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return ansi.Truncate(left+" "+right, m.Width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

package monitor

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
)

// fetchProducts returns a command that loads the page for the current filter
func (m Model) fetchProducts() tea.Cmd {
	store, f := m.Store, m.Filter
	return func() tea.Msg {
		opts := db.ListProductsOptions{Filter: f}
		products, err := store.ListProducts(opts)
		if err != nil {
			return ProductsMsg{Filter: f, Err: err}
		}
		total, err := store.CountProducts(opts)
		return ProductsMsg{Filter: f, Products: products, Total: total, Err: err}
	}
}

// fetchCategories returns a command that loads the category list
func (m Model) fetchCategories() tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		cats, err := store.ListCategories()
		return CategoriesMsg{Categories: cats, Err: err}
	}
}

// fetchStats returns a command that loads catalog statistics
func (m Model) fetchStats() tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		stats, err := store.ProductStats()
		return StatsMsg{Stats: stats, Err: err}
	}
}

// Fixed column widths; the name column takes the rest.
const (
	colSKU      = 14
	colCategory = 12
	colPrice    = 12
	colStock    = 8
	colStatus   = 9
	colPadding  = 2 // default cell padding per column
)

// productColumns sizes the table columns for a terminal width
func productColumns(width int) []table.Column {
	fixed := colSKU + colCategory + colPrice + colStock + colStatus + 6*colPadding
	return []table.Column{
		{Title: "SKU", Width: colSKU},
		{Title: "Name", Width: max(width-fixed, 12)},
		{Title: "Category", Width: colCategory},
		{Title: "Price", Width: colPrice},
		{Title: "Stock", Width: colStock},
		{Title: "Status", Width: colStatus},
	}
}

// productRows renders the loaded products as table rows. Cells are plain
// text; the table truncates them to the column width.
func (m Model) productRows() []table.Row {
	price := m.price.Domain()
	rows := make([]table.Row, 0, len(m.Products))
	for _, p := range m.Products {
		category := p.CategoryName
		if category == "" {
			category = m.categoryName(p.CategoryID)
		}
		rows = append(rows, table.Row{
			p.SKU,
			p.Name,
			category,
			price.Format(p.Price),
			strconv.Itoa(p.Stock),
			string(p.Status),
		})
	}
	return rows
}

// categoryName returns the loaded name for a category ID, or the ID.
func (m Model) categoryName(id string) string {
	for _, c := range m.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// markdownStyle is fixed: glamour's auto detection queries the terminal,
// which Bubble Tea owns while running.
const markdownStyle = "dark"

// DetailState holds the product detail modal
type DetailState struct {
	ProductID string
	Product   *models.Product
	Loading   bool
	Err       error
	Viewport  viewport.Model
}

// openDetail opens the modal for the selected product and loads it
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	p := m.SelectedProduct()
	if p == nil {
		return m, nil
	}
	m.Detail = &DetailState{
		ProductID: p.ID,
		Product:   p,
		Loading:   true,
		Viewport:  viewport.New(m.modalWidth()-4, m.modalHeight()-2),
	}
	return m, m.fetchProductDetail(p.ID)
}

// fetchProductDetail returns a command that reloads a product and renders
// it for the modal width
func (m Model) fetchProductDetail(id string) tea.Cmd {
	store := m.Store
	price, stock := m.price.Domain(), m.stock.Domain()
	width := m.modalWidth() - 4
	return func() tea.Msg {
		p, err := store.GetProduct(id)
		if err != nil {
			return ProductDetailMsg{ProductID: id, Err: err}
		}
		rendered, err := output.RenderMarkdownStyle(productMarkdown(p, price, stock), width, markdownStyle)
		return ProductDetailMsg{ProductID: id, Product: p, Rendered: rendered, Err: err}
	}
}

// showDetail fills the modal if it is still open for the same product
func (m Model) showDetail(msg ProductDetailMsg) (tea.Model, tea.Cmd) {
	if m.Detail == nil || m.Detail.ProductID != msg.ProductID {
		return m, nil
	}
	d := m.Detail
	d.Loading = false
	d.Err = msg.Err
	if msg.Product != nil {
		d.Product = msg.Product
	}
	d.Viewport.Width = m.modalWidth() - 4
	d.Viewport.Height = m.modalHeight() - 2
	if msg.Err != nil {
		m.Logger.Error("load product", "id", msg.ProductID, "err", msg.Err)
		d.Viewport.SetContent(errorStyle.Render(msg.Err.Error()))
		return m, nil
	}
	d.Viewport.SetContent(msg.Rendered)
	d.Viewport.GotoTop()
	return m, nil
}

// productMarkdown describes a product as markdown: a field table followed
// by the description, which is markdown already.
func productMarkdown(p *models.Product, price, stock rangefilter.Domain) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	sb.WriteString("| Field | Value |\n|---|---|\n")
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&sb, "| %s | %s |\n", k, strings.ReplaceAll(v, "|", `\|`))
		}
	}
	row("ID", p.ID)
	row("SKU", p.SKU)
	row("Price", price.Format(p.Price))
	row("Stock", stock.Format(float64(p.Stock)))
	row("Category", p.CategoryName)
	row("Status", string(p.Status))
	row("Updated", p.UpdatedAt.Format("2006-01-02 15:04"))
	if strings.TrimSpace(p.Description) != "" {
		sb.WriteString("\n## Description\n\n")
		sb.WriteString(p.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

// newHelpViewport wraps the generated key help in a scrollable viewport
func newHelpViewport(content string, width, height int) viewport.Model {
	vp := viewport.New(width-4, height-2)
	vp.SetContent(content)
	return vp
}

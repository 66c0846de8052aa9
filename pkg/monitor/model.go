// Package monitor implements the catalog dashboard: a product table narrowed
// by price and stock range filters, category, search and sort order.
package monitor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/logging"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// Options configures a dashboard model.
type Options struct {
	BaseDir         string        // Base directory for config and keymap
	RefreshInterval time.Duration // Zero disables periodic refresh
	Version         string
	Logger          *slog.Logger // nil discards
}

// Model is the main Bubble Tea model for the dashboard
type Model struct {
	Store   Store
	BaseDir string
	Version string
	Logger  *slog.Logger

	// Window dimensions
	Width  int
	Height int

	// Committed filter. The dashboard owns it; the range controls only
	// read it back through SetValue.
	Filter   catalog.ProductFilter
	SortMode SortMode

	// Data
	Products    []models.Product
	Total       int
	Categories  []models.Category
	Stats       *models.ProductStats
	Loaded      bool
	LastRefresh time.Time
	Err         error // Last product fetch error, if any

	// Range filters. Shared across Model copies, as is the queue their
	// change callbacks write to.
	price   *rangefilter.Control
	stock   *rangefilter.Control
	focus   string // domain [ and ] step through
	commits *commitQueue

	table table.Model

	// Search state
	SearchMode   bool
	SearchInput  textinput.Model
	searchBefore string // query restored on cancel

	// Overlays (nil/false = closed)
	Picker   *PickerState
	Custom   *CustomState
	Detail   *DetailState
	HelpOpen bool
	help     viewport.Model

	// Keymap registry for keyboard shortcuts
	Keymap *keymap.Registry

	// Status message (temporary feedback, e.g. "price filter: 100 - 500")
	StatusMessage string
	StatusIsError bool

	RefreshInterval time.Duration
}

// NewModel creates a dashboard over store. Display settings and key
// binding overrides are read from opts.BaseDir.
func NewModel(store Store, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	var warnings []string
	if opts.BaseDir != "" {
		cfg, err := keymap.LoadConfig(keymap.ConfigPath(opts.BaseDir))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("keymap: %v", err))
		} else {
			warnings = append(warnings, keymap.ApplyConfig(km, cfg)...)
		}
	}

	priceDomain, stockDomain := rangefilter.Price, rangefilter.Stock
	if opts.BaseDir != "" {
		if cfg, err := config.Load(opts.BaseDir); err == nil {
			priceDomain, stockDomain = config.Domains(cfg)
		} else {
			logger.Warn("config unreadable, using default display settings", "err", err)
		}
	}

	commits := &commitQueue{}

	searchInput := textinput.New()
	searchInput.Placeholder = "name, SKU or description"
	searchInput.Prompt = ""
	searchInput.Width = 40
	searchInput.CharLimit = 200

	t := table.New(
		table.WithColumns(productColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles())

	m := Model{
		Store:           store,
		BaseDir:         opts.BaseDir,
		Version:         opts.Version,
		Logger:          logger,
		Filter:          catalog.ProductFilter{Limit: catalog.MaxLimit},
		price:           rangefilter.New(priceDomain, rangefilter.Range{}, commits.onChange(rangefilter.DomainPrice)),
		stock:           rangefilter.New(stockDomain, rangefilter.Range{}, commits.onChange(rangefilter.DomainStock)),
		focus:           rangefilter.DomainPrice,
		commits:         commits,
		table:           t,
		SearchInput:     searchInput,
		Keymap:          km,
		RefreshInterval: opts.RefreshInterval,
	}

	for _, w := range warnings {
		logger.Warn("keymap override skipped", "reason", w)
	}
	if len(warnings) > 0 {
		m.setStatus(warnings[0], true)
	}
	return m
}

// Init implements tea.Model. Products are fetched once the saved filter
// state has been restored.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.restoreFilterState(),
		m.fetchCategories(),
		m.fetchStats(),
	}
	if m.RefreshInterval > 0 {
		cmds = append(cmds, m.scheduleTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		return m, tea.Batch(m.fetchProducts(), m.fetchStats(), m.scheduleTick())

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()
		if m.Detail != nil && !m.Detail.Loading {
			return m, m.fetchProductDetail(m.Detail.ProductID)
		}
		return m, nil

	case RestoreFilterMsg:
		return m.restoreFilter(msg)

	case FilterCommittedMsg:
		return m.applyCommit(msg)

	case ProductsMsg:
		// A newer filter was committed while this page was loading
		if msg.Filter != m.Filter {
			return m, nil
		}
		if msg.Err != nil {
			m.Err = msg.Err
			m.Logger.Error("list products", "err", msg.Err)
			return m, nil
		}
		selected := m.selectedID()
		m.Err = nil
		m.Products = msg.Products
		m.Total = msg.Total
		m.Loaded = true
		m.LastRefresh = time.Now()
		m.table.SetRows(m.productRows())
		m.restoreCursor(selected)
		return m, nil

	case CategoriesMsg:
		if msg.Err != nil {
			m.Logger.Error("list categories", "err", msg.Err)
			return m, nil
		}
		m.Categories = msg.Categories
		m.table.SetRows(m.productRows())
		return m, nil

	case StatsMsg:
		if msg.Err != nil {
			m.Logger.Error("product stats", "err", msg.Err)
			return m, nil
		}
		m.Stats = msg.Stats
		return m, nil

	case ProductDetailMsg:
		return m.showDetail(msg)

	case statusMsg:
		m.setStatus(msg.Text, msg.IsError)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and form internals go to whatever has focus
	return m.forwardToFocused(msg)
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// currentContext returns the keymap context for the topmost overlay
func (m Model) currentContext() keymap.Context {
	switch {
	case m.HelpOpen:
		return keymap.ContextHelp
	case m.Detail != nil:
		return keymap.ContextDetail
	case m.Custom != nil:
		return keymap.ContextCustom
	case m.Picker != nil:
		return keymap.ContextPicker
	case m.SearchMode:
		return keymap.ContextSearch
	default:
		return keymap.ContextMain
	}
}

// control returns the range control for a domain name, or nil.
func (m Model) control(domain string) *rangefilter.Control {
	switch domain {
	case rangefilter.DomainPrice:
		return m.price
	case rangefilter.DomainStock:
		return m.stock
	}
	return nil
}

// PriceControl returns the price range control.
func (m Model) PriceControl() *rangefilter.Control { return m.price }

// StockControl returns the stock range control.
func (m Model) StockControl() *rangefilter.Control { return m.stock }

// FocusedFilter returns the domain the step keys act on.
func (m Model) FocusedFilter() string { return m.focus }

func (m *Model) setStatus(text string, isError bool) {
	m.StatusMessage = text
	m.StatusIsError = isError
}

// filterState is the persisted form of the committed filter.
func (m Model) filterState() models.FilterState {
	return models.FilterState{
		Price:      m.Filter.Price,
		Stock:      m.Filter.Stock,
		CategoryID: m.Filter.CategoryID,
		Search:     m.Filter.Search,
		SortMode:   m.SortMode.String(),
	}
}

// selectedID returns the ID of the product under the cursor, or "".
func (m Model) selectedID() string {
	if p := m.SelectedProduct(); p != nil {
		return p.ID
	}
	return ""
}

// SelectedProduct returns the product under the table cursor.
func (m Model) SelectedProduct() *models.Product {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.Products) {
		return nil
	}
	p := m.Products[i]
	return &p
}

// restoreCursor keeps the previously selected product selected after a
// refresh, clamping when it is gone.
func (m *Model) restoreCursor(id string) {
	for i, p := range m.Products {
		if p.ID == id {
			m.table.SetCursor(i)
			return
		}
	}
	if c := m.table.Cursor(); c >= len(m.Products) {
		m.table.SetCursor(max(len(m.Products)-1, 0))
	}
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	if m.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

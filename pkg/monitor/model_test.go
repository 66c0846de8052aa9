package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// newTestCatalog creates a seeded catalog in a temp base directory.
func newTestCatalog(t *testing.T) (*db.DB, string) {
	t.Helper()
	baseDir := t.TempDir()
	store, err := db.Initialize(baseDir)
	if err != nil {
		t.Fatalf("initialize db: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, _, err := store.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store, baseDir
}

// newTestModel returns a sized model over a seeded catalog with Init
// already processed.
func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	store, baseDir := newTestCatalog(t)
	return startModel(t, NewModel(store, Options{BaseDir: baseDir})), baseDir
}

func startModel(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = drain(t, m, m.Init())
	if !m.Loaded {
		t.Fatal("products not loaded after Init")
	}
	return m
}

// runCmds runs commands concurrently and returns the messages they produce
// within a short deadline. Batches are expanded. Commands that block, such
// as cursor blink timers, are abandoned.
func runCmds(cmds ...tea.Cmd) []tea.Msg {
	ch := make(chan tea.Msg, len(cmds))
	n := 0
	for _, c := range cmds {
		if c == nil {
			continue
		}
		n++
		go func(c tea.Cmd) { ch <- c() }(c)
	}

	var out []tea.Msg
	deadline := time.After(200 * time.Millisecond)
	for i := 0; i < n; i++ {
		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				out = append(out, runCmds(batch...)...)
				continue
			}
			if msg != nil {
				out = append(out, msg)
			}
		case <-deadline:
			return out
		}
	}
	return out
}

// drain runs cmd and feeds every resulting message back into the model
// until nothing is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := runCmds(cmd)
	for i := 0; len(queue) > 0; i++ {
		if i > 200 {
			t.Fatal("message loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		next, c := m.Update(msg)
		m = next.(Model)
		queue = append(queue, runCmds(c)...)
	}
	return m
}

// send delivers one message without running the returned command.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+u":    tea.KeyCtrlU,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and drains the resulting commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = drain(t, next.(Model), cmd)
	}
	return m
}

// typeText sends each rune of s as its own key press.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

func skus(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.SKU)
	}
	return out
}

func hasSKUs(t *testing.T, m Model, want ...string) {
	t.Helper()
	got := map[string]bool{}
	for _, s := range skus(m.Products) {
		got[s] = true
	}
	wantSet := map[string]bool{}
	for _, s := range want {
		wantSet[s] = true
	}
	if diff := cmp.Diff(wantSet, got); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
}

func TestInitLoadsCatalog(t *testing.T) {
	m, _ := newTestModel(t)

	if m.Total != 11 || len(m.Products) != 11 {
		t.Errorf("loaded %d of %d products, want 11", len(m.Products), m.Total)
	}
	if len(m.Categories) != 3 {
		t.Errorf("loaded %d categories, want 3", len(m.Categories))
	}
	if m.Stats == nil || m.Stats.Total != 11 {
		t.Errorf("stats = %+v", m.Stats)
	}
	if m.price.Selected() != rangefilter.PresetAll || m.stock.Selected() != rangefilter.PresetAll {
		t.Errorf("fresh filters = %s/%s, want all/all", m.price.Selected(), m.stock.Selected())
	}
	if m.currentContext() != keymap.ContextMain {
		t.Errorf("context = %s, want main", m.currentContext())
	}
}

func TestRestoreSavedFilter(t *testing.T) {
	store, baseDir := newTestCatalog(t)
	saved := models.FilterState{
		Price:    rangefilter.Between(500, 1000),
		SortMode: SortPriceDesc.String(),
	}
	if err := config.SetFilterState(baseDir, saved); err != nil {
		t.Fatal(err)
	}

	m := startModel(t, NewModel(store, Options{BaseDir: baseDir}))

	if got := m.price.Selected(); got != "500-1000" {
		t.Errorf("price preset = %s, want 500-1000", got)
	}
	if m.SortMode != SortPriceDesc {
		t.Errorf("sort = %s, want price-desc", m.SortMode)
	}
	if diff := cmp.Diff([]string{"DSP-34-UW", "DSP-PROJ-MINI"}, skus(m.Products)); diff != "" {
		t.Errorf("products (-want +got):\n%s", diff)
	}
}

func TestRestoreDropsInvalidRange(t *testing.T) {
	store, baseDir := newTestCatalog(t)
	saved := models.FilterState{
		Price: rangefilter.Between(500, 100),
		Stock: rangefilter.AtLeast(-3),
	}
	if err := config.SetFilterState(baseDir, saved); err != nil {
		t.Fatal(err)
	}

	m := startModel(t, NewModel(store, Options{BaseDir: baseDir}))

	if !m.Filter.Price.IsAll() || !m.Filter.Stock.IsAll() {
		t.Errorf("invalid saved ranges kept: price %s stock %s", m.Filter.Price, m.Filter.Stock)
	}
	if m.Total != 11 {
		t.Errorf("total = %d, want 11", m.Total)
	}
}

func TestStaleProductsIgnored(t *testing.T) {
	m, _ := newTestModel(t)

	stale := catalog.ProductFilter{Search: "something else", Limit: catalog.MaxLimit}
	m = send(t, m, ProductsMsg{Filter: stale, Products: nil, Total: 0})

	if m.Total != 11 || len(m.Products) != 11 {
		t.Errorf("stale page replaced products: %d of %d", len(m.Products), m.Total)
	}
}

func TestSearchIsLive(t *testing.T) {
	m, baseDir := newTestModel(t)

	m = press(t, m, "/")
	if !m.SearchMode || m.currentContext() != keymap.ContextSearch {
		t.Fatal("search mode not entered")
	}
	m = typeText(t, m, "monitor")
	if m.Filter.Search != "monitor" {
		t.Fatalf("search = %q, want monitor", m.Filter.Search)
	}
	hasSKUs(t, m, "DSP-24-FHD", "DSP-27-4K")

	m = press(t, m, "enter")
	if m.SearchMode {
		t.Error("enter should leave search mode")
	}
	state, err := config.GetFilterState(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if state.Search != "monitor" {
		t.Errorf("persisted search = %q", state.Search)
	}

	// esc in the table clears a confirmed search
	m = press(t, m, "esc")
	if m.Filter.Search != "" || m.Total != 11 {
		t.Errorf("search not cleared: %q, %d products", m.Filter.Search, m.Total)
	}
}

func TestSearchCancelRestoresQuery(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	if m.Total != 0 {
		t.Fatalf("total = %d, want 0", m.Total)
	}
	m = press(t, m, "esc")
	if m.SearchMode || m.Filter.Search != "" || m.Total != 11 {
		t.Errorf("cancel: mode=%v search=%q total=%d", m.SearchMode, m.Filter.Search, m.Total)
	}
}

func TestSearchKeepsPrintableKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")

	next, cmd := m.Update(keyMsg("q"))
	for _, msg := range runCmds(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			t.Fatal("q quit while typing a search")
		}
	}
	if got := next.(Model).SearchInput.Value(); got != "q" {
		t.Errorf("input = %q, want q", got)
	}
}

func TestCycleCategory(t *testing.T) {
	m, _ := newTestModel(t)

	// Categories are listed by name
	want := []struct {
		name  string
		total int
	}{
		{"Accessories", 4},
		{"Computers", 3},
		{"Displays", 4},
		{"", 11},
	}
	for _, w := range want {
		m = press(t, m, "c")
		got := ""
		if m.Filter.CategoryID != "" {
			got = m.categoryName(m.Filter.CategoryID)
		}
		if got != w.name || m.Total != w.total {
			t.Errorf("category %q with %d products, want %q with %d", got, m.Total, w.name, w.total)
		}
	}
}

func TestCycleSortMode(t *testing.T) {
	m, baseDir := newTestModel(t)

	tests := []struct {
		mode  SortMode
		first string
	}{
		{SortByName, "DSP-24-FHD"},
		{SortPriceAsc, "ACC-USBC-1M"},
		{SortPriceDesc, "CMP-WS-01"},
		{SortStockAsc, ""},
		{SortStockDesc, "ACC-USBC-1M"},
		{SortNewest, ""},
	}
	for _, tt := range tests {
		m = press(t, m, "S")
		if m.SortMode != tt.mode {
			t.Fatalf("sort = %s, want %s", m.SortMode, tt.mode)
		}
		if tt.first != "" && m.Products[0].SKU != tt.first {
			t.Errorf("%s: first = %s, want %s", tt.mode, m.Products[0].SKU, tt.first)
		}
	}

	state, _ := config.GetFilterState(baseDir)
	if state.SortMode != SortNewest.String() {
		t.Errorf("persisted sort = %q", state.SortMode)
	}
}

func TestClearFilters(t *testing.T) {
	m, baseDir := newTestModel(t)

	m = press(t, m, "]", "c", "S")
	if m.Filter.IsZero() {
		t.Fatal("filters not applied")
	}

	m = press(t, m, "x")
	if !m.Filter.IsZero() || m.SortMode != SortNewest {
		t.Errorf("filter not cleared: %+v", m.Filter)
	}
	if m.price.Selected() != rangefilter.PresetAll {
		t.Errorf("price control shows %s", m.price.Selected())
	}
	if m.Total != 11 {
		t.Errorf("total = %d, want 11", m.Total)
	}
	state, _ := config.GetFilterState(baseDir)
	if !state.Price.IsAll() || !state.Stock.IsAll() || state.CategoryID != "" || state.SortMode != "newest" {
		t.Errorf("persisted state = %+v", state)
	}
}

func TestTableNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "j", "j")
	if got := m.table.Cursor(); got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
	m = press(t, m, "G")
	if got := m.table.Cursor(); got != len(m.Products)-1 {
		t.Errorf("cursor = %d, want last", got)
	}
	m = press(t, m, "g", "g")
	if got := m.table.Cursor(); got != 0 {
		t.Errorf("cursor = %d after g g, want 0", got)
	}
}

func TestSelectionSurvivesRefilter(t *testing.T) {
	m, _ := newTestModel(t)

	// Move onto the keyboard, which stays in the 100-500 band
	for i, p := range m.Products {
		if p.SKU == "ACC-KB-TKL" {
			m.table.SetCursor(i)
		}
	}
	m = choose(t, m, rangefilter.DomainPrice, "100-500")

	if p := m.SelectedProduct(); p == nil || p.SKU != "ACC-KB-TKL" {
		t.Errorf("selected = %+v, want ACC-KB-TKL", p)
	}
}

func TestDetailModal(t *testing.T) {
	m, _ := newTestModel(t)
	want := m.SelectedProduct()

	m = press(t, m, "enter")
	if m.Detail == nil {
		t.Fatal("detail not opened")
	}
	if m.Detail.Loading {
		t.Fatal("detail still loading after drain")
	}
	if m.Detail.Err != nil {
		t.Fatalf("detail error: %v", m.Detail.Err)
	}
	if m.Detail.Product.ID != want.ID {
		t.Errorf("detail for %s, want %s", m.Detail.Product.ID, want.ID)
	}
	if m.currentContext() != keymap.ContextDetail {
		t.Errorf("context = %s", m.currentContext())
	}
	if !strings.Contains(ansi.Strip(m.View()), want.Name) {
		t.Error("modal title missing product name")
	}

	m = press(t, m, "esc")
	if m.Detail != nil {
		t.Error("esc did not close detail")
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "?")
	if !m.HelpOpen {
		t.Fatal("help not opened")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Key Bindings") {
		t.Error("help overlay not rendered")
	}
	m = press(t, m, "?")
	if m.HelpOpen {
		t.Error("? should close help")
	}
	m = press(t, m, "?", "esc")
	if m.HelpOpen {
		t.Error("esc should close help")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestViewShowsFilterBar(t *testing.T) {
	m, _ := newTestModel(t)
	m = choose(t, m, rangefilter.DomainPrice, "100-500")

	view := ansi.Strip(m.View())
	for _, want := range []string{"Price:", "100 - 500", "$100 - $500", "Stock:", "All stock", "5 of 5", "ACC-KB-TKL"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEmptyAndCompact(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	m = press(t, m, "enter")
	if !strings.Contains(ansi.Strip(m.View()), "No products match") {
		t.Error("empty state not shown")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.View(), "resize for full view") {
		t.Error("compact view not used for small terminal")
	}
}

func TestKeymapOverrides(t *testing.T) {
	store, baseDir := newTestCatalog(t)
	cfg := &keymap.Config{Bindings: map[string]string{
		"main:P":   "pick-price",
		"main:Z":   "pick-prise",
		"custom:w": "custom-save",
	}}
	if err := keymap.SaveConfig(keymap.ConfigPath(baseDir), cfg); err != nil {
		t.Fatal(err)
	}

	m := startModel(t, NewModel(store, Options{BaseDir: baseDir}))
	if !m.StatusIsError || !strings.Contains(m.StatusMessage, "pick-prise") {
		t.Errorf("status = %q, want warning about pick-prise", m.StatusMessage)
	}

	m = press(t, m, "P")
	if m.Picker == nil || m.Picker.Domain != rangefilter.DomainPrice {
		t.Fatal("override P did not open the price picker")
	}
}

func TestSortModeFromString(t *testing.T) {
	for m := SortNewest; m < sortModeCount; m++ {
		if got := SortModeFromString(m.String()); got != m {
			t.Errorf("SortModeFromString(%q) = %v", m.String(), got)
		}
	}
	if got := SortModeFromString("bogus"); got != SortNewest {
		t.Errorf("unknown mode = %v, want newest", got)
	}
}

func TestProductMarkdown(t *testing.T) {
	p := &models.Product{
		ID:           "pd-1",
		Name:         "Mechanical Keyboard",
		SKU:          "ACC-KB-TKL",
		Price:        1299.5,
		Stock:        1,
		CategoryName: "Accessories",
		Status:       models.StatusActive,
		Description:  "Tenkeyless | hot-swap",
	}
	md := productMarkdown(p, rangefilter.Price, rangefilter.Stock)
	for _, want := range []string{
		"# Mechanical Keyboard",
		"| SKU | ACC-KB-TKL |",
		"| Price | $1,299.5 |",
		"| Stock | 1 unit |",
		"## Description",
		"Tenkeyless | hot-swap",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

// mustModel converts an Update-style result to a Model.
func mustModel(next tea.Model, cmd tea.Cmd) (Model, tea.Cmd) {
	return next.(Model), cmd
}

package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/logging"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// newTestServer creates a Server over a seeded catalog in a temp directory.
func newTestServer(t *testing.T) (*Server, *db.DB) {
	t.Helper()
	return newTestServerWithConfig(t, nil)
}

// newTestServerWithConfig creates a test server with a custom config modifier.
func newTestServerWithConfig(t *testing.T, modCfg func(*Config)) (*Server, *db.DB) {
	t.Helper()
	store, err := db.Initialize(t.TempDir())
	if err != nil {
		t.Fatalf("initialize db: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, _, err := store.Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	if modCfg != nil {
		modCfg(&cfg)
	}
	srv, err := NewServer(cfg, store, logging.Discard())
	if err != nil {
		t.Fatalf("create server: %v", err)
	}
	return srv, store
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

// do sends a request through the full handler stack.
func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// decode checks the status code and unmarshals the envelope's data into dst.
func decode(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, dst any) testEnvelope {
	t.Helper()
	if w.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, wantStatus, w.Body.String())
	}
	var env testEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body: %s", err, w.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v; data: %s", err, env.Data)
		}
	}
	return env
}

func skus(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.SKU
	}
	return out
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want abc-123", got)
	}
}

func TestListProductsFilters(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name        string
		query       string
		wantTotal   int
		pricePreset string
		stockPreset string
	}{
		{"no filter", "", 11, "all", "all"},
		{"price preset", "?minPrice=100&maxPrice=500", 5, "100-500", "all"},
		{"custom price", "?minPrice=50&maxPrice=150", 2, "custom", "all"},
		{"open ended", "?minPrice=1000", 2, "1000+", "all"},
		{"out of stock", "?minStock=0&maxStock=0", 2, "all", "out"},
		{"combined", "?maxPrice=100&minStock=1&maxStock=10", 1, "custom", "1-10"},
		{"stock over 100", "?minStock=101", 2, "all", "100+"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp ProductListResponse
			decode(t, do(t, srv, http.MethodGet, "/products"+tc.query, nil), http.StatusOK, &resp)
			if resp.Total != tc.wantTotal || len(resp.Products) != tc.wantTotal {
				t.Errorf("total = %d, products = %v, want %d", resp.Total, skus(resp.Products), tc.wantTotal)
			}
			if got := resp.Filters["price"].Preset; got != tc.pricePreset {
				t.Errorf("price preset = %q, want %q", got, tc.pricePreset)
			}
			if got := resp.Filters["stock"].Preset; got != tc.stockPreset {
				t.Errorf("stock preset = %q, want %q", got, tc.stockPreset)
			}
		})
	}
}

func TestListProductsBoundsInclusive(t *testing.T) {
	srv, _ := newTestServer(t)
	var resp ProductListResponse
	decode(t, do(t, srv, http.MethodGet, "/products?minPrice=100&maxPrice=500&sort=price&order=asc", nil), http.StatusOK, &resp)

	want := []string{"ACC-KB-TKL", "DSP-24-FHD", "CMP-CB-14", "DSP-27-4K", "DSP-PROJ-MINI"}
	if diff := cmp.Diff(want, skus(resp.Products)); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
	price := resp.Filters["price"]
	if price.Label != "100 - 500" || price.Display != "$100 - $500" {
		t.Errorf("price summary = %+v", price)
	}
	if price.Range != rangefilter.Between(100, 500) {
		t.Errorf("price range = %v", price.Range)
	}
}

func TestListProductsPaging(t *testing.T) {
	srv, _ := newTestServer(t)
	var resp ProductListResponse
	decode(t, do(t, srv, http.MethodGet, "/products?sort=price&limit=3&offset=3", nil), http.StatusOK, &resp)
	if resp.Total != 11 || resp.Limit != 3 || resp.Offset != 3 {
		t.Errorf("paging = total %d limit %d offset %d", resp.Total, resp.Limit, resp.Offset)
	}
	if want := []string{"ACC-KB-TKL", "DSP-24-FHD", "CMP-CB-14"}; !cmp.Equal(want, skus(resp.Products)) {
		t.Errorf("page = %v, want %v", skus(resp.Products), want)
	}
}

func TestListProductsRejectsBadQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		query    string
		wantCode string
	}{
		{"inverted price", "?minPrice=600&maxPrice=100", ErrCodeInvalidRange},
		{"negative stock", "?minStock=-1", ErrCodeInvalidRange},
		{"inverted stock", "?minStock=10&maxStock=5", ErrCodeInvalidRange},
		{"bad number", "?minPrice=abc", ErrCodeInvalidQuery},
		{"bad sort", "?sort=prise", ErrCodeInvalidQuery},
		{"bad order", "?order=sideways", ErrCodeInvalidQuery},
		{"limit too large", "?limit=100000", ErrCodeInvalidQuery},
		{"bad status", "?status=sold", ErrCodeInvalidQuery},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := decode(t, do(t, srv, http.MethodGet, "/products"+tc.query, nil), http.StatusBadRequest, nil)
			if env.Success || env.Error == nil || env.Error.Code != tc.wantCode {
				t.Errorf("error = %+v, want code %q", env.Error, tc.wantCode)
			}
		})
	}
}

func TestListProductsUnknownCategory(t *testing.T) {
	srv, _ := newTestServer(t)
	env := decode(t, do(t, srv, http.MethodGet, "/products?category=Garden", nil), http.StatusNotFound, nil)
	if env.Error.Code != ErrCodeNotFound {
		t.Errorf("code = %q", env.Error.Code)
	}
}

func TestListProductsByCategoryName(t *testing.T) {
	srv, _ := newTestServer(t)
	var resp ProductListResponse
	decode(t, do(t, srv, http.MethodGet, "/products?category=displays&minStock=1", nil), http.StatusOK, &resp)
	if resp.Total != 4 {
		t.Errorf("total = %d, want 4: %v", resp.Total, skus(resp.Products))
	}
}

func TestProductCRUD(t *testing.T) {
	srv, _ := newTestServer(t)

	var created models.Product
	decode(t, do(t, srv, http.MethodPost, "/products", map[string]any{
		"name": "Desk Lamp", "sku": "ACC-LAMP", "price": 35, "stock": 7,
	}), http.StatusCreated, &created)
	if !strings.HasPrefix(created.ID, "pd-") || created.Status != models.StatusActive {
		t.Fatalf("created = %+v", created)
	}

	var got models.Product
	decode(t, do(t, srv, http.MethodGet, "/products/"+created.ID, nil), http.StatusOK, &got)
	if got.Name != "Desk Lamp" || got.Price != 35 {
		t.Errorf("get = %+v", got)
	}

	var updated models.Product
	decode(t, do(t, srv, http.MethodPut, "/products/"+created.ID, map[string]any{"stock": 0}), http.StatusOK, &updated)
	if updated.Stock != 0 || updated.Name != "Desk Lamp" {
		t.Errorf("update kept wrong fields: %+v", updated)
	}

	var resp ProductListResponse
	decode(t, do(t, srv, http.MethodGet, "/products?minStock=0&maxStock=0", nil), http.StatusOK, &resp)
	if resp.Total != 3 {
		t.Errorf("out of stock total = %d, want 3", resp.Total)
	}

	if w := do(t, srv, http.MethodDelete, "/products/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	decode(t, do(t, srv, http.MethodGet, "/products/"+created.ID, nil), http.StatusNotFound, nil)
}

func TestCreateProductValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"missing name", map[string]any{"price": 1}, http.StatusBadRequest},
		{"negative stock", map[string]any{"name": "x", "stock": -3}, http.StatusBadRequest},
		{"unknown field", map[string]any{"name": "x", "colour": "red"}, http.StatusBadRequest},
		{"empty body", "", http.StatusBadRequest},
		{"duplicate sku", map[string]any{"name": "x", "sku": "DSP-27-4K"}, http.StatusConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decode(t, do(t, srv, http.MethodPost, "/products", tc.body), tc.wantStatus, nil)
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	srv, _ := newTestServerWithConfig(t, func(c *Config) { c.MaxBodyBytes = 16 })
	body := `{"name":"` + strings.Repeat("a", 64) + `"}`
	env := decode(t, do(t, srv, http.MethodPost, "/products", body), http.StatusRequestEntityTooLarge, nil)
	if env.Error.Code != ErrCodeTooLarge {
		t.Errorf("code = %q", env.Error.Code)
	}
}

func TestCategories(t *testing.T) {
	srv, _ := newTestServer(t)

	var cats []models.Category
	decode(t, do(t, srv, http.MethodGet, "/categories", nil), http.StatusOK, &cats)
	if len(cats) != 3 {
		t.Fatalf("categories = %d, want 3", len(cats))
	}

	var created models.Category
	decode(t, do(t, srv, http.MethodPost, "/categories", CategoryRequest{Name: "Audio"}), http.StatusCreated, &created)
	decode(t, do(t, srv, http.MethodPost, "/categories", CategoryRequest{Name: "audio"}), http.StatusConflict, nil)

	if w := do(t, srv, http.MethodDelete, "/categories/"+created.ID, nil); w.Code != http.StatusNoContent {
		t.Errorf("delete empty category status = %d", w.Code)
	}

	var displays models.Category
	for _, c := range cats {
		if c.Name == "Displays" {
			displays = c
		}
	}
	decode(t, do(t, srv, http.MethodDelete, "/categories/"+displays.ID, nil), http.StatusConflict, nil)
	if w := do(t, srv, http.MethodDelete, "/categories/"+displays.ID+"?force=true", nil); w.Code != http.StatusNoContent {
		t.Errorf("forced delete status = %d", w.Code)
	}
}

func TestFilterPresets(t *testing.T) {
	srv, _ := newTestServer(t)
	var tables []PresetTable
	decode(t, do(t, srv, http.MethodGet, "/filters/presets", nil), http.StatusOK, &tables)
	if len(tables) != 2 || tables[0].Domain != "price" || tables[1].Domain != "stock" {
		t.Fatalf("tables = %+v", tables)
	}
	if diff := cmp.Diff(rangefilter.Price.PresetIDs(), presetIDs(tables[0].Presets)); diff != "" {
		t.Errorf("price presets (-want +got):\n%s", diff)
	}
	if tables[1].Presets[5].Range != rangefilter.AtLeast(101) {
		t.Errorf("stock 100+ range = %v", tables[1].Presets[5].Range)
	}
}

func presetIDs(ps []rangefilter.Preset) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestFilterResolve(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		query      string
		wantStatus int
		wantPreset string
	}{
		{"?domain=price&min=100&max=500", http.StatusOK, "100-500"},
		{"?domain=price", http.StatusOK, "all"},
		{"?domain=price&min=1000", http.StatusOK, "1000+"},
		{"?domain=price&min=7&max=9", http.StatusOK, "custom"},
		{"?domain=stock&min=0&max=0", http.StatusOK, "out"},
		{"?domain=stock&min=-5", http.StatusBadRequest, ""},
		{"?domain=price&min=9&max=1", http.StatusBadRequest, ""},
		{"?domain=weight", http.StatusBadRequest, ""},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			var sum FilterSummary
			var dst any
			if tc.wantStatus == http.StatusOK {
				dst = &sum
			}
			decode(t, do(t, srv, http.MethodGet, "/filters/resolve"+tc.query, nil), tc.wantStatus, dst)
			if sum.Preset != tc.wantPreset {
				t.Errorf("preset = %q, want %q", sum.Preset, tc.wantPreset)
			}
		})
	}
}

func TestStats(t *testing.T) {
	srv, _ := newTestServerWithConfig(t, func(c *Config) { c.Currency = "Rp" })
	var stats struct {
		Total                 int    `json:"total"`
		OutOfStock            int    `json:"out_of_stock"`
		InventoryValueDisplay string `json:"inventory_value_display"`
	}
	decode(t, do(t, srv, http.MethodGet, "/stats", nil), http.StatusOK, &stats)
	if stats.Total != 11 || stats.OutOfStock != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !strings.HasPrefix(stats.InventoryValueDisplay, "Rp") {
		t.Errorf("inventory display = %q", stats.InventoryValueDisplay)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	env := decode(t, do(t, srv, http.MethodGet, "/nope", nil), http.StatusNotFound, nil)
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodGet, "/products?minPrice=100&maxPrice=500", nil)

	w := do(t, srv, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`starterkit_http_requests_total{method="GET",route="/products`,
		`starterkit_product_filters_total{domain="price",preset="100-500"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestStartAndShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if err := srv.Shutdown(t.Context()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

package api

import (
	"net/http"
	"strings"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// PresetTable lists one domain's presets in display order.
type PresetTable struct {
	Domain  string               `json:"domain"`
	Presets []rangefilter.Preset `json:"presets"`
}

func (s *Server) domain(name string) (rangefilter.Domain, bool) {
	switch name {
	case rangefilter.DomainPrice:
		return s.price, true
	case rangefilter.DomainStock:
		return s.stock, true
	}
	return rangefilter.Domain{}, false
}

func (s *Server) handleFilterPresets(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, []PresetTable{
		{Domain: s.price.Name, Presets: s.price.Presets},
		{Domain: s.stock.Name, Presets: s.stock.Presets},
	})
}

// handleFilterResolve reports which preset a range selects, for clients
// that keep their own range state.
func (s *Server) handleFilterResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := strings.ToLower(strings.TrimSpace(q.Get("domain")))
	d, ok := s.domain(name)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidQuery, `domain must be "price" or "stock"`)
		return
	}

	// Reuse the strict product query parser for the two bounds.
	bounds := map[string][]string{}
	minKey, maxKey := catalog.ParamMinPrice, catalog.ParamMaxPrice
	if name == rangefilter.DomainStock {
		minKey, maxKey = catalog.ParamMinStock, catalog.ParamMaxStock
	}
	if v := q.Get("min"); v != "" {
		bounds[minKey] = []string{v}
	}
	if v := q.Get("max"); v != "" {
		bounds[maxKey] = []string{v}
	}
	f, err := catalog.ParseQuery(bounds)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	rng := f.Price
	if name == rangefilter.DomainStock {
		rng = f.Stock
	}
	writeData(w, http.StatusOK, s.summarize(d, rng))
}

package api

import (
	"net/http"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

// StatsResponse is the data of GET /stats. Display fields are formatted
// with the configured currency and locale.
type StatsResponse struct {
	*models.ProductStats
	InventoryValueDisplay string `json:"inventory_value_display"`
	AvgPriceDisplay       string `json:"avg_price_display"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.ProductStats()
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeData(w, http.StatusOK, StatsResponse{
		ProductStats:          stats,
		InventoryValueDisplay: s.price.Format(stats.InventoryValue),
		AvgPriceDisplay:       s.price.Format(stats.AvgPrice),
	})
}

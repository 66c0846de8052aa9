package cmd

import (
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// openDB opens the catalog in the base directory, reporting failures.
func openDB() (*db.DB, error) {
	database, err := db.Open(getBaseDir())
	if err != nil {
		return nil, fail("%v", err)
	}
	return database, nil
}

// loadDomains returns the price and stock domains formatted with the
// catalog's display settings. An unreadable config falls back to defaults.
func loadDomains() (price, stock rangefilter.Domain) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return rangefilter.Price, rangefilter.Stock
	}
	return config.Domains(cfg)
}

package monitor

import (
	"time"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// Store is the catalog the dashboard reads. *db.DB satisfies it.
type Store interface {
	ListProducts(opts db.ListProductsOptions) ([]models.Product, error)
	CountProducts(opts db.ListProductsOptions) (int, error)
	GetProduct(id string) (*models.Product, error)
	ListCategories() ([]models.Category, error)
	ProductStats() (*models.ProductStats, error)
}

var _ Store = (*db.DB)(nil)

// SortMode represents product table ordering
type SortMode int

const (
	SortNewest    SortMode = iota // Default: created_at DESC
	SortByName                    // name ASC
	SortPriceAsc                  // price ASC
	SortPriceDesc                 // price DESC
	SortStockAsc                  // stock ASC (restock first)
	SortStockDesc                 // stock DESC
	sortModeCount
)

// String returns display name for sort mode
func (s SortMode) String() string {
	switch s {
	case SortByName:
		return "name"
	case SortPriceAsc:
		return "price-asc"
	case SortPriceDesc:
		return "price-desc"
	case SortStockAsc:
		return "stock-asc"
	case SortStockDesc:
		return "stock-desc"
	default:
		return "newest"
	}
}

// Next returns the following mode, wrapping around.
func (s SortMode) Next() SortMode {
	return (s + 1) % sortModeCount
}

// Apply sets the sort field and direction on f.
func (s SortMode) Apply(f *catalog.ProductFilter) {
	switch s {
	case SortByName:
		f.Sort, f.Desc = catalog.SortName, false
	case SortPriceAsc:
		f.Sort, f.Desc = catalog.SortPrice, false
	case SortPriceDesc:
		f.Sort, f.Desc = catalog.SortPrice, true
	case SortStockAsc:
		f.Sort, f.Desc = catalog.SortStock, false
	case SortStockDesc:
		f.Sort, f.Desc = catalog.SortStock, true
	default:
		f.Sort, f.Desc = "", false
	}
}

// SortModeFromString converts a persisted sort mode back to its value.
// Unknown strings map to SortNewest.
func SortModeFromString(s string) SortMode {
	for m := SortNewest; m < sortModeCount; m++ {
		if m.String() == s {
			return m
		}
	}
	return SortNewest
}

// TickMsg triggers a periodic refresh
type TickMsg time.Time

// FilterCommittedMsg carries a range a filter control committed through its
// change callback.
type FilterCommittedMsg struct {
	Domain string
	Range  rangefilter.Range
}

// RestoreFilterMsg is sent on launch with the saved filter state
type RestoreFilterMsg struct {
	State models.FilterState
	Err   error
}

// ProductsMsg carries one fetched page of products. Filter is the filter
// the page was fetched with, so results for a superseded filter are dropped.
type ProductsMsg struct {
	Filter   catalog.ProductFilter
	Products []models.Product
	Total    int
	Err      error
}

// CategoriesMsg carries the category list
type CategoriesMsg struct {
	Categories []models.Category
	Err        error
}

// StatsMsg carries catalog statistics
type StatsMsg struct {
	Stats *models.ProductStats
	Err   error
}

// ProductDetailMsg carries a product and its rendered description for the
// detail modal
type ProductDetailMsg struct {
	ProductID string
	Product   *models.Product
	Rendered  string
	Err       error
}

// statusMsg sets the footer status line
type statusMsg struct {
	Text    string
	IsError bool
}

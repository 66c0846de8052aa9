// Package catalog holds the product filter model shared by the CLI, the
// dashboard and the HTTP API. It owns the committed price and stock ranges
// and knows how to express them as a query string or apply them in memory.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// Paging limits.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// SortField is a product column the list can be ordered by.
type SortField string

const (
	SortCreated SortField = "created_at"
	SortUpdated SortField = "updated_at"
	SortName    SortField = "name"
	SortPrice   SortField = "price"
	SortStock   SortField = "stock"
)

// SortFields lists the valid sort fields in display order.
func SortFields() []SortField {
	return []SortField{SortCreated, SortUpdated, SortName, SortPrice, SortStock}
}

// IsValidSortField checks if a sort field is valid
func IsValidSortField(f SortField) bool {
	return slices.Contains(SortFields(), f)
}

// ProductFilter selects and orders products. The zero value lists every
// live product newest first with the default page size.
type ProductFilter struct {
	Price      rangefilter.Range
	Stock      rangefilter.Range
	CategoryID string
	Search     string
	Sort       SortField
	Desc       bool
	Limit      int
	Offset     int
}

// SortOrDefault returns the sort field, defaulting to creation time.
func (f ProductFilter) SortOrDefault() SortField {
	if f.Sort == "" {
		return SortCreated
	}
	return f.Sort
}

// Descending reports the effective direction. With no explicit sort the
// list is newest first.
func (f ProductFilter) Descending() bool {
	if f.Sort == "" {
		return true
	}
	return f.Desc
}

// LimitOrDefault clamps the page size into [1, MaxLimit].
func (f ProductFilter) LimitOrDefault() int {
	switch {
	case f.Limit <= 0:
		return DefaultLimit
	case f.Limit > MaxLimit:
		return MaxLimit
	}
	return f.Limit
}

// Validate checks both ranges against their domains.
func (f ProductFilter) Validate() error {
	if err := rangefilter.Price.Validate(f.Price); err != nil {
		return err
	}
	return rangefilter.Stock.Validate(f.Stock)
}

// Presets returns the resolved preset id for each range, keyed by domain.
func (f ProductFilter) Presets() map[string]string {
	return map[string]string{
		rangefilter.DomainPrice: rangefilter.Resolve(rangefilter.Price, f.Price),
		rangefilter.DomainStock: rangefilter.Resolve(rangefilter.Stock, f.Stock),
	}
}

// IsZero reports whether the filter narrows nothing.
func (f ProductFilter) IsZero() bool {
	return f.Price.IsAll() && f.Stock.IsAll() && f.CategoryID == "" && strings.TrimSpace(f.Search) == ""
}

// Matches reports whether p passes every predicate. Deleted products never
// match.
func (f ProductFilter) Matches(p models.Product) bool {
	if p.DeletedAt != nil {
		return false
	}
	if !f.Price.Contains(p.Price) || !f.Stock.Contains(float64(p.Stock)) {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}

// Apply filters, sorts and pages products in memory with the same
// semantics the database query uses. The input slice is not modified.
func (f ProductFilter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}

	field, desc := f.SortOrDefault(), f.Descending()
	slices.SortStableFunc(out, func(a, b models.Product) int {
		c := compareBy(field, a, b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})

	if f.Offset >= len(out) {
		return out[:0]
	}
	if f.Offset > 0 {
		out = out[f.Offset:]
	}
	if limit := f.LimitOrDefault(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

func compareBy(field SortField, a, b models.Product) int {
	switch field {
	case SortName:
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortPrice:
		return cmp.Compare(a.Price, b.Price)
	case SortStock:
		return cmp.Compare(a.Stock, b.Stock)
	case SortUpdated:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

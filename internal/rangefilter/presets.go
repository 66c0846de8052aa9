package rangefilter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Domain names.
const (
	DomainPrice = "price"
	DomainStock = "stock"
)

// DefaultCurrency is the symbol used by Price.
const DefaultCurrency = "$"

// Price is the product price domain with the default currency.
var Price = NewPriceDomain(DefaultCurrency, language.English)

// Stock is the on-hand quantity domain. Presets are disjoint over integers.
var Stock = NewStockDomain(language.English)

// NewPriceDomain returns the price domain rendering values with the given
// currency symbol and locale grouping.
func NewPriceDomain(currency string, tag language.Tag) Domain {
	return Domain{
		Name: DomainPrice,
		Presets: []Preset{
			{ID: PresetAll, Label: "All prices", Range: Range{}},
			{ID: "0-100", Label: "0 - 100", Range: Between(0, 100)},
			{ID: "100-500", Label: "100 - 500", Range: Between(100, 500)},
			{ID: "500-1000", Label: "500 - 1,000", Range: Between(500, 1000)},
			{ID: "1000+", Label: "1,000+", Range: AtLeast(1000)},
		},
		FormatUnit: CurrencyFormatter(currency, tag),
	}
}

// NewStockDomain returns the stock domain formatted for the given locale.
func NewStockDomain(tag language.Tag) Domain {
	return Domain{
		Name: DomainStock,
		Presets: []Preset{
			{ID: PresetAll, Label: "All stock", Range: Range{}},
			{ID: "out", Label: "Out of stock", Range: Between(0, 0)},
			{ID: "1-10", Label: "1 - 10", Range: Between(1, 10)},
			{ID: "11-50", Label: "11 - 50", Range: Between(11, 50)},
			{ID: "51-100", Label: "51 - 100", Range: Between(51, 100)},
			{ID: "100+", Label: "Over 100", Range: AtLeast(101)},
		},
		ExtraValidation: NonNegative,
		FormatUnit:      UnitFormatter("unit", "units", tag),
	}
}

// DomainByName returns Price or Stock.
func DomainByName(name string) (Domain, bool) {
	switch name {
	case DomainPrice:
		return Price, true
	case DomainStock:
		return Stock, true
	}
	return Domain{}, false
}

// Domains lists every built-in domain.
func Domains() []Domain { return []Domain{Price, Stock} }

// NonNegative rejects ranges with a negative bound.
func NonNegative(r Range) error {
	if v, ok := r.Min.Get(); ok && v < 0 {
		return ErrNegativeBound
	}
	if v, ok := r.Max.Get(); ok && v < 0 {
		return ErrNegativeBound
	}
	return nil
}

// CurrencyFormatter renders amounts as symbol plus a grouped decimal with
// at most two fraction digits.
func CurrencyFormatter(symbol string, tag language.Tag) func(float64) string {
	return func(v float64) string {
		p := message.NewPrinter(tag)
		return symbol + p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	}
}

// UnitFormatter renders whole quantities followed by a unit name.
func UnitFormatter(singular, plural string, tag language.Tag) func(float64) string {
	return func(v float64) string {
		p := message.NewPrinter(tag)
		unit := plural
		if v == 1 {
			unit = singular
		}
		return p.Sprintf("%v %s", number.Decimal(v, number.MaxFractionDigits(0)), unit)
	}
}

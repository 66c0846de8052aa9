package catalog

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
)

// Query parameter names.
const (
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamMinStock = "minStock"
	ParamMaxStock = "maxStock"
	ParamCategory = "category"
	ParamSearch   = "search"
	ParamSort     = "sort"
	ParamOrder    = "order"
	ParamLimit    = "limit"
	ParamOffset   = "offset"
)

var (
	ErrInvalidNumber = errors.New("not a valid number")
	ErrInvalidSort   = errors.New("unknown sort field")
	ErrInvalidOrder  = errors.New("order must be asc or desc")
	ErrOutOfRange    = errors.New("value out of range")
)

// QueryError is a rejected query parameter.
type QueryError struct {
	Param string
	Value string
	Err   error
	Hint  string
}

func (e *QueryError) Error() string {
	var msg string
	if e.Value == "" {
		msg = fmt.Sprintf("%s: %v", e.Param, e.Err)
	} else {
		msg = fmt.Sprintf("%s=%q: %v", e.Param, e.Value, e.Err)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Hint)
	}
	return msg
}

func (e *QueryError) Unwrap() error { return e.Err }

// Values encodes the filter as query parameters. Unset bounds and default
// settings are omitted.
func (f ProductFilter) Values() url.Values {
	v := url.Values{}
	setBound := func(key string, b rangefilter.Bound) {
		if b.IsSet() {
			v.Set(key, b.String())
		}
	}
	setBound(ParamMinPrice, f.Price.Min)
	setBound(ParamMaxPrice, f.Price.Max)
	setBound(ParamMinStock, f.Stock.Min)
	setBound(ParamMaxStock, f.Stock.Max)
	if f.CategoryID != "" {
		v.Set(ParamCategory, f.CategoryID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		v.Set(ParamSearch, s)
	}
	if f.Sort != "" {
		v.Set(ParamSort, string(f.Sort))
		if f.Desc {
			v.Set(ParamOrder, "desc")
		} else {
			v.Set(ParamOrder, "asc")
		}
	}
	if f.Limit > 0 {
		v.Set(ParamLimit, strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set(ParamOffset, strconv.Itoa(f.Offset))
	}
	return v
}

// Encode returns the filter as a URL query string.
func (f ProductFilter) Encode() string { return f.Values().Encode() }

// ParseQuery decodes a product filter from query parameters. Unlike the
// interactive control it is strict: malformed numbers, unknown sort fields
// and invalid ranges are rejected.
func ParseQuery(q url.Values) (ProductFilter, error) {
	var f ProductFilter
	var err error

	if f.Price.Min, err = parseBound(q, ParamMinPrice); err != nil {
		return f, err
	}
	if f.Price.Max, err = parseBound(q, ParamMaxPrice); err != nil {
		return f, err
	}
	if f.Stock.Min, err = parseBound(q, ParamMinStock); err != nil {
		return f, err
	}
	if f.Stock.Max, err = parseBound(q, ParamMaxStock); err != nil {
		return f, err
	}
	if err := rangefilter.Price.Validate(f.Price); err != nil {
		return f, &QueryError{Param: rangefilter.DomainPrice, Err: err}
	}
	if err := rangefilter.Stock.Validate(f.Stock); err != nil {
		return f, &QueryError{Param: rangefilter.DomainStock, Err: err}
	}

	f.CategoryID = strings.TrimSpace(q.Get(ParamCategory))
	f.Search = strings.TrimSpace(q.Get(ParamSearch))

	if s := strings.TrimSpace(q.Get(ParamSort)); s != "" {
		field := SortField(strings.ToLower(s))
		if !IsValidSortField(field) {
			names := make([]string, 0, len(SortFields()))
			for _, sf := range SortFields() {
				names = append(names, string(sf))
			}
			return f, &QueryError{Param: ParamSort, Value: s, Err: ErrInvalidSort, Hint: suggest.Closest(s, names)}
		}
		f.Sort = field
	}
	switch o := strings.ToLower(strings.TrimSpace(q.Get(ParamOrder))); o {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		return f, &QueryError{Param: ParamOrder, Value: o, Err: ErrInvalidOrder}
	}

	if f.Limit, err = parseInt(q, ParamLimit, 0, MaxLimit); err != nil {
		return f, err
	}
	if f.Offset, err = parseInt(q, ParamOffset, 0, math.MaxInt32); err != nil {
		return f, err
	}
	return f, nil
}

func parseBound(q url.Values, key string) (rangefilter.Bound, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return rangefilter.Unset(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return rangefilter.Unset(), &QueryError{Param: key, Value: s, Err: ErrInvalidNumber}
	}
	return rangefilter.At(v), nil
}

func parseInt(q url.Values, key string, lo, hi int) (int, error) {
	s := strings.TrimSpace(q.Get(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &QueryError{Param: key, Value: s, Err: ErrInvalidNumber}
	}
	if n < lo || n > hi {
		return 0, &QueryError{Param: key, Value: s, Err: ErrOutOfRange}
	}
	return n, nil
}

// Package rangefilter implements a reusable numeric range filter: a small
// set of named presets plus a custom min/max dialog. The committed value is
// owned by the caller; the control only reports new values through OnChange.
package rangefilter

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Bound is one end of a Range. The zero value is unset.
type Bound struct {
	value float64
	set   bool
}

// Unset returns a bound with no value.
func Unset() Bound { return Bound{} }

// At returns a bound set to v. NaN and infinities are not representable
// and yield an unset bound.
func At(v float64) Bound {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Bound{}
	}
	if v == 0 {
		v = 0 // fold -0
	}
	return Bound{value: v, set: true}
}

// IsSet reports whether the bound carries a value.
func (b Bound) IsSet() bool { return b.set }

// Get returns the value and whether it is set.
func (b Bound) Get() (float64, bool) { return b.value, b.set }

// Float returns the value, or 0 when unset.
func (b Bound) Float() float64 { return b.value }

// String returns the shortest decimal form of the value, or "" when unset.
func (b Bound) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatFloat(b.value, 'f', -1, 64)
}

// MarshalJSON encodes an unset bound as null.
func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(b.value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts null or a JSON number.
func (b *Bound) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = Bound{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = At(v)
	return nil
}

// ParseBound converts user-entered text into a bound. Empty, whitespace,
// non-numeric and non-finite text all parse to Unset.
func ParseBound(text string) Bound {
	text = strings.TrimSpace(text)
	if text == "" {
		return Bound{}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Bound{}
	}
	return At(v)
}

// FormatDraft renders a bound as editable text. It is the inverse of
// ParseBound for every set bound.
func FormatDraft(b Bound) string { return b.String() }

// Range is an inclusive numeric interval. Either end may be unset, meaning
// no limit on that side. The zero Range matches everything.
type Range struct {
	Min Bound `json:"min"`
	Max Bound `json:"max"`
}

// Between returns the range [min, max].
func Between(min, max float64) Range { return Range{Min: At(min), Max: At(max)} }

// AtLeast returns the range [min, +inf).
func AtLeast(min float64) Range { return Range{Min: At(min)} }

// AtMost returns the range (-inf, max].
func AtMost(max float64) Range { return Range{Max: At(max)} }

// IsAll reports whether neither bound is set.
func (r Range) IsAll() bool { return !r.Min.set && !r.Max.set }

// Inverted reports whether both bounds are set and min exceeds max.
func (r Range) Inverted() bool {
	return r.Min.set && r.Max.set && r.Min.value > r.Max.value
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	if r.Min.set && v < r.Min.value {
		return false
	}
	if r.Max.set && v > r.Max.value {
		return false
	}
	return true
}

// String renders the range as "min..max" with empty sides for unset bounds.
func (r Range) String() string {
	return r.Min.String() + ".." + r.Max.String()
}

// rangeDash returns the index of the dash separating "min-max", or -1.
// A dash after an exponent marker belongs to the number, as in "2e-3-10".
func rangeDash(text string) int {
	for i := len(text) - 1; i > 0; i-- {
		if text[i] == '-' && text[i-1] != 'e' && text[i-1] != 'E' {
			return i
		}
	}
	return -1
}

// ParseRange parses the CLI shorthand "min-max", "min+", "-max", "min.."
// and "..max". It reports false when text is not a range expression.
func ParseRange(text string) (Range, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Range{}, false
	}
	parse := func(s string) (Bound, bool) {
		s = strings.TrimSpace(s)
		if s == "" {
			return Bound{}, true
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Bound{}, false
		}
		return At(v), true
	}

	if lo, hi, ok := strings.Cut(text, ".."); ok {
		min, okMin := parse(lo)
		max, okMax := parse(hi)
		return Range{Min: min, Max: max}, okMin && okMax
	}
	if strings.HasSuffix(text, "+") {
		min, ok := parse(strings.TrimSuffix(text, "+"))
		return Range{Min: min}, ok && min.set
	}
	// Skip a leading sign so "-5" is read as "up to 5" rather than a
	// negative lower bound with an empty upper side.
	if strings.HasPrefix(text, "-") {
		max, ok := parse(text[1:])
		return Range{Max: max}, ok && max.set
	}
	if i := rangeDash(text); i > 0 {
		min, okMin := parse(text[:i])
		max, okMax := parse(text[i+1:])
		return Range{Min: min, Max: max}, okMin && okMax && min.set && max.set
	}
	b, ok := parse(text)
	if !ok {
		return Range{}, false
	}
	return Range{Min: b, Max: b}, true
}

package rangefilter

import (
	"fmt"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
)

// Preset ids with special meaning in every domain.
const (
	PresetAll    = "all"
	PresetCustom = "custom"
)

// Preset is a named fixed range.
type Preset struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Range Range  `json:"range"`
}

// Domain describes one kind of filterable quantity: its presets in display
// order, an optional extra validation rule for custom ranges, and how to
// render a single value.
type Domain struct {
	Name            string
	Presets         []Preset
	ExtraValidation func(Range) error
	FormatUnit      func(float64) string
}

// Preset returns the preset with the given id.
func (d Domain) Preset(id string) (Preset, bool) {
	for _, p := range d.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Lookup is Preset with a descriptive error for unknown ids.
func (d Domain) Lookup(id string) (Preset, error) {
	if p, ok := d.Preset(id); ok {
		return p, nil
	}
	return Preset{}, &UnknownPresetError{
		Domain:     d.Name,
		ID:         id,
		Suggestion: suggest.Closest(id, d.PresetIDs()),
	}
}

// PresetIDs returns the fixed preset ids in declaration order.
func (d Domain) PresetIDs() []string {
	ids := make([]string, len(d.Presets))
	for i, p := range d.Presets {
		ids[i] = p.ID
	}
	return ids
}

// Validate checks a custom range: ordering first, then the domain rule.
func (d Domain) Validate(r Range) error {
	if r.Inverted() {
		return &ValidationError{Domain: d.Name, Err: ErrInvertedRange}
	}
	if d.ExtraValidation != nil {
		if err := d.ExtraValidation(r); err != nil {
			return &ValidationError{Domain: d.Name, Err: err}
		}
	}
	return nil
}

// Label returns the display label for a preset id, including the custom
// pseudo-preset.
func (d Domain) Label(id string) string {
	if id == PresetCustom {
		return "Custom"
	}
	if p, ok := d.Preset(id); ok {
		return p.Label
	}
	return id
}

// Format renders one value with the domain's unit formatter.
func (d Domain) Format(v float64) string {
	if d.FormatUnit == nil {
		return FormatDraft(At(v))
	}
	return d.FormatUnit(v)
}

// Describe renders a range for display, e.g. "$100 - $500" or "≥ 101 units".
func (d Domain) Describe(r Range) string {
	min, hasMin := r.Min.Get()
	max, hasMax := r.Max.Get()
	switch {
	case !hasMin && !hasMax:
		return "Any"
	case hasMin && hasMax && min == max:
		return d.Format(min)
	case hasMin && hasMax:
		return fmt.Sprintf("%s - %s", d.Format(min), d.Format(max))
	case hasMin:
		return "≥ " + d.Format(min)
	default:
		return "≤ " + d.Format(max)
	}
}

// Resolve derives the selected preset id for a committed range: the first
// preset in declaration order whose bounds match exactly, "all" for an
// unbounded range, and "custom" for anything else.
func Resolve(d Domain, r Range) string {
	for _, p := range d.Presets {
		if p.Range == r {
			return p.ID
		}
	}
	if r.IsAll() {
		return PresetAll
	}
	return PresetCustom
}

package rangefilter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvertedRange means both bounds are set and min exceeds max.
	ErrInvertedRange = errors.New("minimum exceeds maximum")
	// ErrNegativeBound means a domain that only admits non-negative values
	// received a negative bound.
	ErrNegativeBound = errors.New("negative bound")
	// ErrUnknownPreset is returned by Choose for ids the domain does not define.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrNotEditing is returned by dialog operations while the dialog is closed.
	ErrNotEditing = errors.New("custom range dialog is not open")
)

// ValidationError is a failed custom save. Err is one of the sentinels above.
type ValidationError struct {
	Domain string
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvertedRange):
		return fmt.Sprintf("maximum %s must not be less than minimum %s", e.Domain, e.Domain)
	case errors.Is(e.Err, ErrNegativeBound):
		return fmt.Sprintf("%s bounds must not be negative", e.Domain)
	default:
		return fmt.Sprintf("invalid %s range: %v", e.Domain, e.Err)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UnknownPresetError names the rejected id and, when one is close, the
// preset the caller probably meant.
type UnknownPresetError struct {
	Domain     string
	ID         string
	Suggestion string
}

func (e *UnknownPresetError) Error() string {
	msg := fmt.Sprintf("unknown %s preset %q", e.Domain, e.ID)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *UnknownPresetError) Unwrap() error { return ErrUnknownPreset }

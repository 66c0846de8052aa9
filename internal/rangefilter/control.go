package rangefilter

// State is the lifecycle of the custom range dialog.
type State int

const (
	// Closed: only quick select is available.
	Closed State = iota
	// Editing: the dialog is open with no error.
	Editing
	// Invalid: the dialog is open showing the last save error.
	Invalid
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Editing:
		return "editing"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Draft is the dialog's uncommitted text. It exists only while the dialog
// is open and is replaced on every open.
type Draft struct {
	MinText string
	MaxText string
	Err     error
}

// Range parses the draft text. Unparseable text is treated as unset.
func (d *Draft) Range() Range {
	return Range{Min: ParseBound(d.MinText), Max: ParseBound(d.MaxText)}
}

// Control is a range filter bound to one domain. It never stores a selected
// preset: the selection is always derived from the committed value, which
// the owner pushes in with SetValue. New values leave only through onChange.
//
// A Control is not safe for concurrent use; call it from a single event loop.
type Control struct {
	domain   Domain
	value    Range
	onChange func(Range)
	draft    *Draft
}

// New returns a closed control showing value.
func New(domain Domain, value Range, onChange func(Range)) *Control {
	return &Control{domain: domain, value: value, onChange: onChange}
}

// Domain returns the control's domain.
func (c *Control) Domain() Domain { return c.domain }

// Value returns the committed range as last pushed by the owner.
func (c *Control) Value() Range { return c.value }

// SetValue replaces the committed range. An open draft is left alone.
func (c *Control) SetValue(r Range) { c.value = r }

// Selected returns the preset id resolved from the committed range.
func (c *Control) Selected() string { return Resolve(c.domain, c.value) }

// State reports the dialog state.
func (c *Control) State() State {
	switch {
	case c.draft == nil:
		return Closed
	case c.draft.Err != nil:
		return Invalid
	default:
		return Editing
	}
}

// Draft returns the open dialog's draft, or nil when closed. Callers may
// edit MinText and MaxText in place.
func (c *Control) Draft() *Draft { return c.draft }

// Choose handles a quick-select pick. Fixed presets are committed at once;
// "custom" opens the dialog seeded from the committed value.
func (c *Control) Choose(id string) error {
	if id == PresetCustom {
		c.Open()
		return nil
	}
	p, err := c.domain.Lookup(id)
	if err != nil {
		return err
	}
	c.commit(p.Range)
	return nil
}

// Step commits the fixed preset delta positions away from the current
// selection, wrapping around. A custom selection steps from "all".
func (c *Control) Step(delta int) {
	n := len(c.domain.Presets)
	if n == 0 {
		return
	}
	cur := 0
	sel := c.Selected()
	for i, p := range c.domain.Presets {
		if p.ID == sel {
			cur = i
			break
		}
	}
	next := ((cur+delta)%n + n) % n
	c.commit(c.domain.Presets[next].Range)
}

// Open opens the custom dialog with a fresh draft seeded from the
// committed value.
func (c *Control) Open() {
	c.draft = &Draft{
		MinText: FormatDraft(c.value.Min),
		MaxText: FormatDraft(c.value.Max),
	}
}

// SetDraft replaces the draft text and clears any error shown.
func (c *Control) SetDraft(minText, maxText string) error {
	if c.draft == nil {
		return ErrNotEditing
	}
	c.draft.MinText = minText
	c.draft.MaxText = maxText
	c.draft.Err = nil
	return nil
}

// Save validates the draft. On success onChange receives the parsed range
// and the dialog closes. On failure the error is kept on the draft, the
// dialog stays open and the error is also returned.
func (c *Control) Save() error {
	if c.draft == nil {
		return ErrNotEditing
	}
	r := c.draft.Range()
	if err := c.domain.Validate(r); err != nil {
		c.draft.Err = err
		return err
	}
	c.draft = nil
	c.commit(r)
	return nil
}

// ResetDraft empties both fields and clears the error. The dialog stays
// open and the committed value is untouched.
func (c *Control) ResetDraft() {
	if c.draft == nil {
		return
	}
	c.draft = &Draft{}
}

// Cancel discards the draft and closes the dialog.
func (c *Control) Cancel() { c.draft = nil }

func (c *Control) commit(r Range) {
	if c.onChange != nil {
		c.onChange(r)
	}
}

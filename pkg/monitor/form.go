package monitor

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

var titleCase = cases.Title(language.English)

// PickerState holds the open preset picker
type PickerState struct {
	Domain string
	Choice string // Bound to the select; starts at the current selection
	Form   *huh.Form
}

func newPickerState(ctrl *rangefilter.Control, width int) *PickerState {
	d := ctrl.Domain()
	ps := &PickerState{Domain: d.Name, Choice: ctrl.Selected()}

	opts := make([]huh.Option[string], 0, len(d.Presets)+1)
	for _, p := range d.Presets {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%-14s %s", p.Label, d.Describe(p.Range)), p.ID))
	}
	opts = append(opts, huh.NewOption("Custom…", rangefilter.PresetCustom))

	ps.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(titleCase.String(d.Name)+" filter").
				Options(opts...).
				Value(&ps.Choice),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false).WithWidth(width)
	return ps
}

// CustomState holds the custom range dialog. The inputs are bound to
// MinText and MaxText; the control's draft is updated from them on save.
type CustomState struct {
	Domain  string
	MinText string
	MaxText string
	Err     error // Last rejected save, shown in the form
	Form    *huh.Form
}

// newCustomState builds the dialog for a control whose draft is open.
func newCustomState(ctrl *rangefilter.Control, width int) *CustomState {
	cs := &CustomState{Domain: ctrl.Domain().Name}
	var err error
	if d := ctrl.Draft(); d != nil {
		cs.MinText, cs.MaxText, err = d.MinText, d.MaxText, d.Err
	}
	cs.build(err, width)
	return cs
}

// build constructs the huh.Form from the current field text
func (cs *CustomState) build(err error, width int) {
	cs.Err = err
	group := huh.NewGroup(
		huh.NewInput().
			Title("Min").
			Placeholder("no minimum").
			Value(&cs.MinText),
		huh.NewInput().
			Title("Max").
			Placeholder("no maximum").
			Value(&cs.MaxText),
	).Title("Custom " + cs.Domain + " range")
	if err != nil {
		group = group.Description("✗ " + err.Error())
	}
	cs.Form = huh.NewForm(group).
		WithTheme(huh.ThemeDracula()).
		WithShowHelp(false).
		WithWidth(width)
}

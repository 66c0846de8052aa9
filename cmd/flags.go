package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// flagNames lists every flag a command accepts, inherited ones included.
func flagNames(cmd *cobra.Command) []string {
	var names []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden {
			names = append(names, f.Name)
		}
	})
	cmd.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	return names
}

// rangeFlags registers --<domain>, --min-<domain> and --max-<domain>.
func rangeFlags(fs *pflag.FlagSet, d rangefilter.Domain) {
	fs.String(d.Name, "", fmt.Sprintf("%s preset (%s) or range like 100-500, 100+ or -50",
		d.Name, strings.Join(d.PresetIDs(), ", ")))
	fs.String("min-"+d.Name, "", "Minimum "+d.Name+" (inclusive)")
	fs.String("max-"+d.Name, "", "Maximum "+d.Name+" (inclusive)")
}

// parsePresetOrRange accepts a preset id or range text. Preset ids win, so
// "0-100" selects the preset rather than parsing as a range with the same
// bounds.
func parsePresetOrRange(d rangefilter.Domain, text string) (rangefilter.Range, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == rangefilter.PresetAll {
		return rangefilter.Range{}, nil
	}
	if p, ok := d.Preset(strings.ToLower(text)); ok {
		return p.Range, nil
	}
	if r, ok := rangefilter.ParseRange(text); ok {
		return r, nil
	}
	_, err := d.Lookup(text)
	return rangefilter.Range{}, err
}

// readRange builds the committed range for d from the flags registered by
// rangeFlags. Explicit --min/--max values override the matching bound of
// the preset or range, and bound text must be numeric.
func readRange(fs *pflag.FlagSet, d rangefilter.Domain) (rangefilter.Range, error) {
	text, _ := fs.GetString(d.Name)
	r, err := parsePresetOrRange(d, text)
	if err != nil {
		return r, err
	}

	for _, side := range []struct {
		name  string
		bound *rangefilter.Bound
	}{
		{"min-" + d.Name, &r.Min},
		{"max-" + d.Name, &r.Max},
	} {
		if !fs.Changed(side.name) {
			continue
		}
		v, _ := fs.GetString(side.name)
		b := rangefilter.ParseBound(v)
		if !b.IsSet() && strings.TrimSpace(v) != "" {
			return r, fmt.Errorf("--%s: %q is not a number", side.name, v)
		}
		*side.bound = b
	}

	if err := d.Validate(r); err != nil {
		return r, err
	}
	return r, nil
}

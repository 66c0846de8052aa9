package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
)

var filterCmd = &cobra.Command{
	Use:     "filter",
	Short:   "Inspect price and stock filter presets",
	GroupID: "filter",
}

// domainArg resolves a domain name argument against the display domains.
func domainArg(name string, price, stock rangefilter.Domain) (rangefilter.Domain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case rangefilter.DomainPrice:
		return price, nil
	case rangefilter.DomainStock:
		return stock, nil
	}
	msg := fmt.Sprintf("unknown filter domain %q (valid: price, stock)", name)
	if s := suggest.Closest(name, []string{rangefilter.DomainPrice, rangefilter.DomainStock}); s != "" {
		msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return rangefilter.Domain{}, errors.New(msg)
}

var filterPresetsCmd = &cobra.Command{
	Use:       "presets [price|stock]",
	Short:     "Print preset tables",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{rangefilter.DomainPrice, rangefilter.DomainStock},
	RunE: func(cmd *cobra.Command, args []string) error {
		price, stock := loadDomains()
		domains := []rangefilter.Domain{price, stock}
		if len(args) == 1 {
			d, err := domainArg(args[0], price, stock)
			if err != nil {
				return fail("%v", err)
			}
			domains = []rangefilter.Domain{d}
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			tables := map[string][]rangefilter.Preset{}
			for _, d := range domains {
				tables[d.Name] = d.Presets
			}
			return output.JSON(tables)
		}

		for i, d := range domains {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(output.SectionHeader(d.Name))
			for _, p := range d.Presets {
				fmt.Printf("  %-10s %-14s %s\n", p.ID, p.Label, d.Describe(p.Range))
			}
			fmt.Printf("  %-10s %-14s %s\n", rangefilter.PresetCustom, d.Label(rangefilter.PresetCustom), "any other min/max")
		}
		return nil
	},
}

var filterResolveCmd = &cobra.Command{
	Use:   "resolve <price|stock>",
	Short: "Print the preset a min/max range selects",
	Example: `  starterkit filter resolve price --min 100 --max 500   # 100-500
  starterkit filter resolve stock --min 0 --max 0       # out
  starterkit filter resolve price --min 7               # custom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, stock := loadDomains()
		d, err := domainArg(args[0], price, stock)
		if err != nil {
			return fail("%v", err)
		}

		var r rangefilter.Range
		for _, side := range []struct {
			flag  string
			bound *rangefilter.Bound
		}{{"min", &r.Min}, {"max", &r.Max}} {
			v, _ := cmd.Flags().GetString(side.flag)
			b := rangefilter.ParseBound(v)
			if !b.IsSet() && strings.TrimSpace(v) != "" {
				return fail("--%s: %q is not a number", side.flag, v)
			}
			*side.bound = b
		}
		if err := d.Validate(r); err != nil {
			return fail("%v", err)
		}

		id := rangefilter.Resolve(d, r)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Println(output.FormatFilter(d, r))
			return nil
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.AddCommand(filterPresetsCmd, filterResolveCmd)

	filterPresetsCmd.Flags().Bool("json", false, "JSON output")
	filterResolveCmd.Flags().String("min", "", "Minimum bound (empty for none)")
	filterResolveCmd.Flags().String("max", "", "Maximum bound (empty for none)")
	filterResolveCmd.Flags().BoolP("verbose", "v", false, "Print label and description too")
}

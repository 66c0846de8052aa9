package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
)

var (
	version string
	baseDir string
	dirFlag string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "starterkit",
	Short: "Local product catalog with price and stock range filters",
	Long: `starterkit - A local product catalog with a terminal dashboard and HTTP API.

Products can be narrowed by price and stock using fixed presets or custom
min/max ranges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

// reportedError marks an error already printed to the user.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// fail prints the message and returns it as an already reported error.
func fail(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	output.Error("%v", err)
	return reportedError{err}
}

// nameWithAliases returns "name, alias1, alias2" if aliases exist, else just "name"
func nameWithAliases(cmd *cobra.Command) string {
	if len(cmd.Aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(cmd.Aliases, ", ")
	}
	return cmd.Name()
}

func init() {
	cobra.OnInitialize(initBaseDir)

	// Add custom template function for showing aliases
	cobra.AddTemplateFunc("nameWithAliases", nameWithAliases)

	// Custom usage template that shows aliases inline
	usageTemplate := `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`

	// Need to add the 'add' function for padding calculation
	cobra.AddTemplateFunc("add", func(a, b int) int { return a + b })

	rootCmd.SetUsageTemplate(usageTemplate)
	rootCmd.SetFlagErrorFunc(flagError)
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Catalog directory (default: current directory)")

	// Define command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Catalog Commands:"},
		&cobra.Group{ID: "filter", Title: "Filter Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)

	// Assign built-in commands to system group
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

func initBaseDir() {
	dir := dirFlag
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
			os.Exit(1)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --dir %q: %v\n", dir, err)
		os.Exit(1)
	}
	baseDir = abs
}

// getBaseDir returns the base directory for the catalog
func getBaseDir() string {
	return baseDir
}

// flagError adds "did you mean" suggestions to unknown flag errors.
func flagError(cmd *cobra.Command, err error) error {
	msg := err.Error()
	const prefix = "unknown flag: "
	if !strings.HasPrefix(msg, prefix) {
		return fail("%w", err)
	}
	bad := strings.TrimPrefix(msg, prefix)

	var valid []string
	for _, f := range flagNames(cmd) {
		valid = append(valid, "--"+f)
	}
	switch hint, matches := suggest.GetFlagHint(bad), suggest.Flag(bad, valid); {
	case hint != "":
		output.Error("%s (try %s)", msg, hint)
	case len(matches) > 0:
		output.Error("%s (did you mean %s?)", msg, strings.Join(matches, " or "))
	default:
		output.Error("%s", msg)
	}
	return reportedError{err}
}

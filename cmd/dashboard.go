package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/logging"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor"
)

// dashboardLogFile lives under the state dir; the alt screen owns stderr.
const dashboardLogFile = "starterkit.log"

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"monitor", "ui"},
	Short:   "Interactive product table with price and stock filters",
	Long: `Launch the catalog dashboard: a product table narrowed by price and
stock range filters, category, search and sort order. Filters are saved
to .starterkit/config.json and restored on the next launch.

Key bindings:
  p / s          Choose a price / stock preset (or Custom…)
  [ / ]          Step the focused filter to the previous / next preset
  Tab            Switch the focused filter
  /              Search by name, SKU or description
  c              Cycle category
  S              Cycle sort order
  x              Clear all filters
  Enter          Product details
  r              Refresh
  ?              Toggle help
  q              Quit

Bindings can be changed in .starterkit/keymap.json.`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		logFile, err := logging.RotatingFile(logging.FileOptions{
			Path:       filepath.Join(baseDir, db.StateDir, dashboardLogFile),
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 28,
		})
		if err != nil {
			return fail("open log file: %v", err)
		}
		defer logFile.Close()

		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.Options{Level: level, Format: "text", Output: logFile})

		interval, _ := cmd.Flags().GetDuration("interval")
		if interval != 0 && interval < 500*time.Millisecond {
			interval = 2 * time.Second
		}

		model := monitor.NewModel(database, monitor.Options{
			BaseDir:         baseDir,
			RefreshInterval: interval,
			Version:         version,
			Logger:          logger,
		})

		logger.Info("dashboard started", "version", version, "dir", baseDir)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running dashboard: %w", err)
		}
		logger.Info("dashboard stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().Duration("interval", 5*time.Second, "Refresh interval (0 disables)")
	dashboardCmd.Flags().String("log-level", "info", "Log level for .starterkit/starterkit.log (debug, info, warn, error)")
}

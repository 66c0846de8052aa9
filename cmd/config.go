package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/config"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/suggest"
	"github.com/mallexibra-dev/smart-starterkit-sub001/pkg/monitor/keymap"
)

// validConfigKeys lists the supported config keys for set/get.
var validConfigKeys = []string{"currency", "locale"}

func checkConfigKey(key string) error {
	for _, k := range validConfigKeys {
		if k == key {
			return nil
		}
	}
	msg := fmt.Sprintf("unknown config key: %s (valid: %s)", key, strings.Join(validConfigKeys, ", "))
	if s := suggest.Closest(key, validConfigKeys); s != "" {
		msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return errors.New(msg)
}

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage catalog display settings and saved filters",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value (currency, locale)",
	Example: `  starterkit config set currency €
  starterkit config set locale de`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if err := checkConfigKey(key); err != nil {
			return fail("%v", err)
		}

		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return fail("load config: %v", err)
		}
		currency, locale := cfg.Currency, cfg.Locale
		switch key {
		case "currency":
			currency = val
		case "locale":
			locale = val
		}
		if err := config.SetDisplay(getBaseDir(), currency, locale); err != nil {
			return fail("set %s: %v", key, err)
		}

		output.Success("set %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := checkConfigKey(key); err != nil {
			return fail("%v", err)
		}

		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return fail("load config: %v", err)
		}

		var val string
		switch key {
		case "currency":
			val = cfg.Currency
			if val == "" {
				val = "$ (default)"
			}
		case "locale":
			val = cfg.Locale
			if val == "" {
				val = "en (default)"
			}
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the whole config, including the saved dashboard filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			return fail("load config: %v", err)
		}
		return output.JSON(cfg)
	},
}

var configResetFilterCmd = &cobra.Command{
	Use:   "reset-filter",
	Short: "Forget the dashboard's saved filters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ClearFilterState(getBaseDir()); err != nil {
			return fail("reset filter: %v", err)
		}
		output.Success("saved filters cleared")
		return nil
	},
}

var configKeymapCmd = &cobra.Command{
	Use:   "keymap",
	Short: "Write an example .starterkit/keymap.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := keymap.ConfigPath(getBaseDir())
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fail("%s already exists (use --force to overwrite)", path)
		}
		if err := keymap.SaveConfig(path, keymap.ExampleConfig()); err != nil {
			return fail("write keymap: %v", err)
		}
		output.Success("wrote %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd, configResetFilterCmd, configKeymapCmd)
	configKeymapCmd.Flags().Bool("force", false, "Overwrite an existing keymap file")
}

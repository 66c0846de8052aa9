package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/buildinfo"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version and catalog schema version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Print(version)
			return
		}

		fmt.Println(buildinfo.Line("starterkit", version))

		// Schema version only when a catalog exists here
		database, err := db.Open(getBaseDir())
		if err != nil {
			return
		}
		defer database.Close()
		if v, dirty, err := database.SchemaVersion(); err == nil {
			suffix := ""
			if dirty {
				suffix = " (dirty)"
			}
			fmt.Printf("catalog schema %d%s\n", v, suffix)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "Print only the version")
}

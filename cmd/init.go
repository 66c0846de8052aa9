package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize a new catalog",
	Long:    `Creates the local .starterkit directory and SQLite database, optionally with demo data.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()
		seed, _ := cmd.Flags().GetBool("seed")

		_, statErr := os.Stat(filepath.Join(baseDir, db.StateDir))
		existed := statErr == nil

		// Initialize is idempotent and applies pending migrations
		database, err := db.Initialize(baseDir)
		if err != nil {
			return fail("failed to initialize database: %v", err)
		}
		defer database.Close()

		if existed {
			output.Warning("%s/ already exists", db.StateDir)
		} else {
			fmt.Printf("INITIALIZED %s/\n", db.StateDir)
		}
		if v, _, err := database.SchemaVersion(); err == nil {
			fmt.Printf("Schema version: %d\n", v)
		}

		if _, err := os.Stat(filepath.Join(baseDir, ".git")); err == nil {
			addToGitignore(filepath.Join(baseDir, ".gitignore"))
		}

		if seed {
			cats, prods, err := database.Seed()
			if err != nil {
				return fail("seed failed: %v", err)
			}
			output.Success("Seeded %d categories and %d products", cats, prods)
		}
		return nil
	},
}

func addToGitignore(path string) {
	// Read existing content
	content, _ := os.ReadFile(path)
	contentStr := string(content)

	entry := db.StateDir + "/"
	if strings.Contains(contentStr, entry) {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	if len(contentStr) > 0 && !strings.HasSuffix(contentStr, "\n") {
		f.WriteString("\n")
	}
	f.WriteString(entry + "\n")
	fmt.Printf("Added %s to .gitignore\n", entry)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("seed", false, "Insert demo categories and products")
}

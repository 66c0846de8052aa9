package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories", "cat"},
	Short:   "List and manage categories",
	GroupID: "core",
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories with product counts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		cats, err := database.ListCategories()
		if err != nil {
			return fail("list categories: %v", err)
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			if cats == nil {
				cats = []models.Category{}
			}
			return output.JSON(cats)
		}
		for _, c := range cats {
			fmt.Printf("%s  %-20s %3d products", c.ID, c.Name, c.ProductCount)
			if c.Description != "" {
				fmt.Printf("  %s", c.Description)
			}
			fmt.Println()
		}
		if len(cats) == 0 {
			fmt.Println("No categories")
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"create"},
	Short:   "Add a category",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		desc, _ := cmd.Flags().GetString("description")
		c := &models.Category{Name: args[0], Description: desc}
		if err := database.CreateCategory(c); err != nil {
			return fail("%v", err)
		}
		output.Success("CREATED %s %s", c.ID, c.Name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a category",
	Long: `Deletes a category. Categories that still hold products are refused
unless --force is given, in which case those products become uncategorized.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		force, _ := cmd.Flags().GetBool("force")
		if err := database.DeleteCategory(args[0], force); err != nil {
			if errors.Is(err, db.ErrCategoryInUse) {
				return fail("%v (use --force to uncategorize them)", err)
			}
			return fail("%v", err)
		}
		fmt.Printf("DELETED %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryDeleteCmd)

	categoryListCmd.Flags().Bool("json", false, "JSON output")
	categoryAddCmd.Flags().StringP("description", "d", "", "Description")
	categoryDeleteCmd.Flags().BoolP("force", "f", false, "Uncategorize products still in the category")
}

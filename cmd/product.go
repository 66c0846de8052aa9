package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/input"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/output"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products", "p"},
	Short:   "List and manage products",
	GroupID: "core",
}

var productListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products matching price, stock and other filters",
	Example: `  starterkit product list --price 100-500
  starterkit product list --price 50-150 --stock out
  starterkit product list --min-stock 1 --max-stock 10 --sort price`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		price, stock := loadDomains()

		f, err := productFilterFromFlags(cmd, price, stock)
		if err != nil {
			return fail("%v", err)
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		opts := db.ListProductsOptions{Filter: f}
		if st, _ := cmd.Flags().GetString("status"); st != "" {
			opts.Status = models.NormalizeStatus(strings.ToLower(st))
			if !models.IsValidStatus(opts.Status) {
				return fail("invalid status: %s (valid: active, draft, archived)", st)
			}
		}
		if f.CategoryID != "" {
			c, err := database.GetCategory(f.CategoryID)
			if err != nil {
				return fail("%v", err)
			}
			opts.Filter.CategoryID = c.ID
		}

		products, err := database.ListProducts(opts)
		if err != nil {
			return fail("list products: %v", err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			total, err := database.CountProducts(opts)
			if err != nil {
				return fail("count products: %v", err)
			}
			if products == nil {
				products = []models.Product{}
			}
			return output.JSON(map[string]any{
				"products": products,
				"total":    total,
				"filters":  f.Presets(),
			})
		}

		fmt.Println(output.FormatFilter(price, f.Price))
		fmt.Println(output.FormatFilter(stock, f.Stock))
		fmt.Println()
		for i := range products {
			fmt.Println(output.FormatProductShort(&products[i], price))
		}
		if len(products) == 0 {
			fmt.Println("No products found")
		}
		return nil
	},
}

// productFilterFromFlags assembles the list filter from command flags.
func productFilterFromFlags(cmd *cobra.Command, price, stock rangefilter.Domain) (catalog.ProductFilter, error) {
	var f catalog.ProductFilter
	var err error
	fs := cmd.Flags()

	if f.Price, err = readRange(fs, price); err != nil {
		return f, err
	}
	if f.Stock, err = readRange(fs, stock); err != nil {
		return f, err
	}
	f.CategoryID, _ = fs.GetString("category")
	f.Search, _ = fs.GetString("search")

	sortBy, _ := fs.GetString("sort")
	reverse, _ := fs.GetBool("reverse")
	if sortBy != "" {
		field := catalog.SortField(strings.ToLower(sortBy))
		if !catalog.IsValidSortField(field) {
			names := make([]string, 0, len(catalog.SortFields()))
			for _, sf := range catalog.SortFields() {
				names = append(names, string(sf))
			}
			return f, fmt.Errorf("invalid sort field %q (valid: %s)", sortBy, strings.Join(names, ", "))
		}
		f.Sort = field
		f.Desc = reverse
	} else if reverse {
		// Default order is newest first; --reverse shows oldest first.
		f.Sort = catalog.SortCreated
	}

	f.Limit, _ = fs.GetInt("limit")
	if f.Limit < 0 || f.Limit > catalog.MaxLimit {
		return f, fmt.Errorf("--limit must be between 0 and %d", catalog.MaxLimit)
	}
	return f, nil
}

var productShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		p, err := database.GetProduct(args[0])
		if err != nil {
			return fail("%v", err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(p)
		}

		price, _ := loadDomains()
		desc := p.Description
		if desc != "" {
			if rendered, err := output.RenderMarkdownWithWidth(desc, output.TerminalWidth(80)); err == nil {
				desc = rendered
			}
		}
		fmt.Print(output.FormatProductLong(p, price, desc))
		return nil
	},
}

var productAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"create"},
	Short:   "Add a product",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		p := &models.Product{Name: args[0]}
		if err := applyProductFlags(cmd, p); err != nil {
			return fail("%v", err)
		}
		if err := database.CreateProduct(p); err != nil {
			return fail("%v", err)
		}

		price, _ := loadDomains()
		output.Success("CREATED %s", p.ID)
		fmt.Println(output.FormatProductShort(p, price))
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Aliases: []string{"edit"},
	Short:   "Update product fields",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		p, err := database.GetProduct(args[0])
		if err != nil {
			return fail("%v", err)
		}
		if cmd.Flags().Changed("name") {
			p.Name, _ = cmd.Flags().GetString("name")
		}
		if err := applyProductFlags(cmd, p); err != nil {
			return fail("%v", err)
		}
		if err := database.UpdateProduct(p); err != nil {
			return fail("%v", err)
		}

		price, _ := loadDomains()
		output.Success("UPDATED %s", p.ID)
		fmt.Println(output.FormatProductShort(p, price))
		return nil
	},
}

// applyProductFlags copies explicitly set field flags onto p.
func applyProductFlags(cmd *cobra.Command, p *models.Product) error {
	fs := cmd.Flags()
	if fs.Changed("description") {
		v, _ := fs.GetString("description")
		desc, err := input.ExpandText(v, cmd.InOrStdin())
		if err != nil {
			return err
		}
		p.Description = desc
	}
	if fs.Changed("sku") {
		p.SKU, _ = fs.GetString("sku")
	}
	if fs.Changed("price") {
		p.Price, _ = fs.GetFloat64("price")
	}
	if fs.Changed("stock") {
		p.Stock, _ = fs.GetInt("stock")
	}
	if fs.Changed("category") {
		p.CategoryID, _ = fs.GetString("category")
	}
	if fs.Changed("status") {
		st, _ := fs.GetString("status")
		p.Status = models.NormalizeStatus(strings.ToLower(st))
		if !models.IsValidStatus(p.Status) {
			return fmt.Errorf("invalid status: %s (valid: active, draft, archived)", st)
		}
	}
	return nil
}

var productDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete products",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		var failed int
		for _, id := range args {
			if err := database.DeleteProduct(id); err != nil {
				if errors.Is(err, db.ErrNotFound) {
					output.Warning("%v", err)
				} else {
					output.Error("%v", err)
				}
				failed++
				continue
			}
			fmt.Printf("DELETED %s\n", db.NormalizeProductID(id))
		}
		if failed > 0 {
			return reportedError{fmt.Errorf("%d of %d deletions failed", failed, len(args))}
		}
		return nil
	},
}

func addProductFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("description", "d", "", "Description (markdown; - reads stdin, @file reads a file)")
	cmd.Flags().String("sku", "", "Stock keeping unit, unique when set")
	cmd.Flags().Float64("price", 0, "Unit price")
	cmd.Flags().Int("stock", 0, "Units on hand")
	cmd.Flags().StringP("category", "c", "", "Category id or name")
	cmd.Flags().String("status", "", "active, draft or archived")
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productListCmd, productShowCmd, productAddCmd, productUpdateCmd, productDeleteCmd)

	price, stock := rangefilter.Price, rangefilter.Stock
	rangeFlags(productListCmd.Flags(), price)
	rangeFlags(productListCmd.Flags(), stock)
	productListCmd.Flags().StringP("category", "c", "", "Category id or name")
	productListCmd.Flags().StringP("search", "q", "", "Match name, SKU or description")
	productListCmd.Flags().String("status", "", "active, draft or archived")
	productListCmd.Flags().String("sort", "", "Sort by created_at, updated_at, name, price or stock")
	productListCmd.Flags().BoolP("reverse", "r", false, "Reverse sort order")
	productListCmd.Flags().IntP("limit", "n", catalog.DefaultLimit, "Maximum products to show")
	productListCmd.Flags().Bool("json", false, "JSON output")

	productShowCmd.Flags().Bool("json", false, "JSON output")

	addProductFieldFlags(productAddCmd)
	addProductFieldFlags(productUpdateCmd)
	productUpdateCmd.Flags().String("name", "", "New name")
}

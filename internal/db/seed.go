package db

import (
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

type seedProduct struct {
	name, sku, desc string
	price           float64
	stock           int
	status          models.Status
}

// seedCatalog spreads prices and stock across every preset band so each
// filter preset matches something.
var seedCatalog = []struct {
	category, desc string
	products       []seedProduct
}{
	{"Accessories", "Small add-ons and cables", []seedProduct{
		{"USB-C Cable", "ACC-USBC-1M", "Braided **1m** cable, 60W.", 9.5, 240, models.StatusActive},
		{"Wireless Mouse", "ACC-MOUSE-01", "2.4GHz mouse with silent clicks.", 24.99, 0, models.StatusActive},
		{"Laptop Stand", "ACC-STAND-AL", "Aluminium stand, adjustable height.", 45, 8, models.StatusActive},
		{"Mechanical Keyboard", "ACC-KB-TKL", "Tenkeyless, hot-swappable switches.", 100, 35, models.StatusActive},
	}},
	{"Displays", "Monitors and projectors", []seedProduct{
		{"24\" Office Monitor", "DSP-24-FHD", "1080p IPS panel.", 149, 60, models.StatusActive},
		{"27\" 4K Monitor", "DSP-27-4K", "4K panel with USB-C power delivery.", 499, 12, models.StatusActive},
		{"Portable Projector", "DSP-PROJ-MINI", "Pocket projector for meetings.", 500, 3, models.StatusDraft},
		{"34\" Ultrawide", "DSP-34-UW", "Curved ultrawide for multitasking.", 899, 51, models.StatusActive},
	}},
	{"Computers", "Laptops and desktops", []seedProduct{
		{"Chromebook 14", "CMP-CB-14", "Lightweight laptop for students.", 329, 101, models.StatusActive},
		{"Developer Laptop", "CMP-DEV-16", "16GB RAM, 1TB SSD.\n\n- Backlit keyboard\n- Two USB-C ports", 1299.99, 11, models.StatusActive},
		{"Workstation Tower", "CMP-WS-01", "Rendering workstation.", 2450, 0, models.StatusArchived},
	}},
}

// Seed inserts demo categories and products. Existing categories with the
// same name are reused.
func (db *DB) Seed() (categories, products int, err error) {
	for _, group := range seedCatalog {
		cat, err := db.GetCategory(group.category)
		if err != nil {
			cat = &models.Category{Name: group.category, Description: group.desc}
			if err := db.CreateCategory(cat); err != nil {
				return categories, products, err
			}
			categories++
		}
		for _, sp := range group.products {
			p := &models.Product{
				Name:        sp.name,
				SKU:         sp.sku,
				Description: sp.desc,
				Price:       sp.price,
				Stock:       sp.stock,
				Status:      sp.status,
				CategoryID:  cat.ID,
			}
			if err := db.CreateProduct(p); err != nil {
				return categories, products, err
			}
			products++
		}
	}
	return categories, products, nil
}

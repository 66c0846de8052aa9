package models

import (
	"time"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/rangefilter"
)

// Status represents product status
type Status string

const (
	StatusActive   Status = "active"
	StatusDraft    Status = "draft"
	StatusArchived Status = "archived"
)

// LowStockThreshold is the highest stock count still reported as low.
const LowStockThreshold = 10

// Product is a catalog item
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	SKU          string     `json:"sku,omitempty"`
	Price        float64    `json:"price"`
	Stock        int        `json:"stock"`
	CategoryID   string     `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Category groups products
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductStats summarizes the live catalog
type ProductStats struct {
	Total          int            `json:"total"`
	ByStatus       map[Status]int `json:"by_status"`
	OutOfStock     int            `json:"out_of_stock"`
	LowStock       int            `json:"low_stock"`
	TotalUnits     int            `json:"total_units"`
	InventoryValue float64        `json:"inventory_value"`
	MinPrice       float64        `json:"min_price"`
	MaxPrice       float64        `json:"max_price"`
	AvgPrice       float64        `json:"avg_price"`
}

// FilterState is the dashboard filter persisted between sessions
type FilterState struct {
	Price      rangefilter.Range `json:"price"`
	Stock      rangefilter.Range `json:"stock"`
	CategoryID string            `json:"category_id,omitempty"`
	Search     string            `json:"search,omitempty"`
	SortMode   string            `json:"sort_mode,omitempty"`
}

// Config represents the local config state
type Config struct {
	Filter   FilterState `json:"filter"`
	Currency string      `json:"currency,omitempty"`
	Locale   string      `json:"locale,omitempty"`
}

// IsValidStatus checks if a status is valid
func IsValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// NormalizeStatus converts alternate status names to canonical form
// Accepts: "published" and "live" as aliases for "active"
func NormalizeStatus(s string) Status {
	switch s {
	case "published", "live":
		return StatusActive
	default:
		return Status(s)
	}
}

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/catalog"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

// ListProductsOptions selects products. Filter carries the committed
// price and stock ranges; unset bounds add no predicate.
type ListProductsOptions struct {
	Filter         catalog.ProductFilter
	Status         models.Status
	IncludeDeleted bool
}

const productColumns = `p.id, p.name, p.description, p.sku, p.price, p.stock,
	COALESCE(p.category_id, ''), COALESCE(c.name, ''), p.status,
	p.created_at, p.updated_at, p.deleted_at`

const productFrom = ` FROM products p LEFT JOIN categories c ON c.id = p.category_id`

// sortColumns maps sort fields to columns, keeping ORDER BY injection-free.
var sortColumns = map[catalog.SortField]string{
	catalog.SortCreated: "p.created_at",
	catalog.SortUpdated: "p.updated_at",
	catalog.SortName:    "p.name COLLATE NOCASE",
	catalog.SortPrice:   "p.price",
	catalog.SortStock:   "p.stock",
}

func scanProduct(s interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	var deletedAt sql.NullTime
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &deletedAt)
	if deletedAt.Valid {
		p.DeletedAt = &deletedAt.Time
	}
	return p, err
}

// validateProduct normalizes and checks fields shared by create and update.
func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	if p.Name == "" {
		return invalid("product name is required")
	}
	if p.Price < 0 {
		return invalid("price must not be negative")
	}
	if p.Stock < 0 {
		return invalid("stock must not be negative")
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if !models.IsValidStatus(p.Status) {
		return invalid("unknown status %q", p.Status)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateProduct inserts a product and fills in its ID and timestamps
func (db *DB) CreateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.CategoryID != "" {
		c, err := db.GetCategory(p.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID, p.CategoryName = c.ID, c.Name
	}

	return db.withWriteLock(func() error {
		now := time.Now().UTC()
		p.ID = newID(productIDPrefix)
		p.CreatedAt, p.UpdatedAt = now, now

		_, err := db.conn.Exec(`
			INSERT INTO products (id, name, description, sku, price, stock, category_id, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.SKU, p.Price, p.Stock,
			nullIfEmpty(p.CategoryID), p.Status, p.CreatedAt, p.UpdatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, ErrDuplicate)
		}
		return err
	})
}

// GetProduct returns a live product by ID
func (db *DB) GetProduct(id string) (*models.Product, error) {
	row := db.conn.QueryRow(`SELECT `+productColumns+productFrom+
		` WHERE p.id = ? AND p.deleted_at IS NULL`, NormalizeProductID(id))
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct writes every mutable field of p
func (db *DB) UpdateProduct(p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	p.ID = NormalizeProductID(p.ID)
	if p.CategoryID != "" {
		c, err := db.GetCategory(p.CategoryID)
		if err != nil {
			return err
		}
		p.CategoryID, p.CategoryName = c.ID, c.Name
	} else {
		p.CategoryName = ""
	}

	return db.withWriteLock(func() error {
		p.UpdatedAt = time.Now().UTC()
		res, err := db.conn.Exec(`
			UPDATE products
			SET name = ?, description = ?, sku = ?, price = ?, stock = ?, category_id = ?, status = ?, updated_at = ?
			WHERE id = ? AND deleted_at IS NULL`,
			p.Name, p.Description, p.SKU, p.Price, p.Stock,
			nullIfEmpty(p.CategoryID), p.Status, p.UpdatedAt, p.ID)
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %q: %w", p.SKU, ErrDuplicate)
		}
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
		}
		return nil
	})
}

// DeleteProduct soft-deletes a product
func (db *DB) DeleteProduct(id string) error {
	id = NormalizeProductID(id)
	return db.withWriteLock(func() error {
		now := time.Now().UTC()
		res, err := db.conn.Exec(`UPDATE products SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
			now, now, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

// likeEscaper makes search text match literally inside a LIKE pattern
// with ESCAPE '\', the way strings.Contains does in Matches.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// buildProductWhere renders the WHERE clause shared by list and count.
// Each range bound contributes a predicate only when set, and bounds are
// inclusive, matching catalog.ProductFilter.Matches.
func buildProductWhere(opts ListProductsOptions) (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, arg any) {
		clauses = append(clauses, clause)
		args = append(args, arg)
	}

	if !opts.IncludeDeleted {
		clauses = append(clauses, "p.deleted_at IS NULL")
	}
	f := opts.Filter
	if v, ok := f.Price.Min.Get(); ok {
		add("p.price >= ?", v)
	}
	if v, ok := f.Price.Max.Get(); ok {
		add("p.price <= ?", v)
	}
	if v, ok := f.Stock.Min.Get(); ok {
		add("p.stock >= ?", v)
	}
	if v, ok := f.Stock.Max.Get(); ok {
		add("p.stock <= ?", v)
	}
	if f.CategoryID != "" {
		add("p.category_id = ?", NormalizeCategoryID(f.CategoryID))
	}
	if opts.Status != "" {
		add("p.status = ?", opts.Status)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		clauses = append(clauses, `(LOWER(p.name) LIKE ? ESCAPE '\' OR LOWER(p.sku) LIKE ? ESCAPE '\' OR LOWER(p.description) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListProducts returns one page of products matching opts
func (db *DB) ListProducts(opts ListProductsOptions) ([]models.Product, error) {
	where, args := buildProductWhere(opts)

	f := opts.Filter
	dir := "ASC"
	if f.Descending() {
		dir = "DESC"
	}
	col, ok := sortColumns[f.SortOrDefault()]
	if !ok {
		col = sortColumns[catalog.SortCreated]
	}

	query := "SELECT " + productColumns + productFrom + where +
		fmt.Sprintf(" ORDER BY %s %s, p.id %s LIMIT ? OFFSET ?", col, dir, dir)
	args = append(args, f.LimitOrDefault(), max(f.Offset, 0))

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountProducts returns the number of products matching opts, ignoring
// paging
func (db *DB) CountProducts(opts ListProductsOptions) (int, error) {
	where, args := buildProductWhere(opts)
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*)"+productFrom+where, args...).Scan(&n)
	return n, err
}

// ProductStats summarizes live products
func (db *DB) ProductStats() (*models.ProductStats, error) {
	stats := &models.ProductStats{ByStatus: map[models.Status]int{}}
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN stock BETWEEN 1 AND ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(stock), 0),
		       COALESCE(SUM(price * stock), 0),
		       COALESCE(MIN(price), 0),
		       COALESCE(MAX(price), 0),
		       COALESCE(AVG(price), 0)
		FROM products WHERE deleted_at IS NULL`, models.LowStockThreshold).
		Scan(&stats.Total, &stats.OutOfStock, &stats.LowStock, &stats.TotalUnits,
			&stats.InventoryValue, &stats.MinPrice, &stats.MaxPrice, &stats.AvgPrice)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`SELECT status, COUNT(*) FROM products WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[s] = n
	}
	return stats, rows.Err()
}

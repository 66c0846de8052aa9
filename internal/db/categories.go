package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/models"
)

// CreateCategory inserts a category and fills in its ID and timestamps
func (db *DB) CreateCategory(c *models.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return invalid("category name is required")
	}
	return db.withWriteLock(func() error {
		now := time.Now().UTC()
		c.ID = newID(categoryIDPrefix)
		c.CreatedAt, c.UpdatedAt = now, now

		_, err := db.conn.Exec(`
			INSERT INTO categories (id, name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("category %q: %w", c.Name, ErrDuplicate)
		}
		return err
	})
}

// GetCategory returns a category by ID or, failing that, by name
func (db *DB) GetCategory(idOrName string) (*models.Category, error) {
	row := db.conn.QueryRow(`
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id AND p.deleted_at IS NULL)
		FROM categories c
		WHERE c.id = ? OR c.name = ? COLLATE NOCASE
		ORDER BY c.id = ? DESC
		LIMIT 1`,
		NormalizeCategoryID(idOrName), idOrName, NormalizeCategoryID(idOrName))

	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.ProductCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", idOrName, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns every category by name with live product counts
func (db *DB) ListCategories() ([]models.Category, error) {
	rows, err := db.conn.Query(`
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
		       COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.ProductCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCategory removes a category. Categories still referenced by live
// products are refused unless force is set, in which case those products
// become uncategorized.
func (db *DB) DeleteCategory(id string, force bool) error {
	c, err := db.GetCategory(id)
	if err != nil {
		return err
	}
	if c.ProductCount > 0 && !force {
		return fmt.Errorf("category %s has %d products: %w", c.Name, c.ProductCount, ErrCategoryInUse)
	}

	return db.withWriteLock(func() error {
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if _, err := tx.Exec(`UPDATE products SET category_id = NULL, updated_at = ? WHERE category_id = ?`,
			time.Now().UTC(), c.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM categories WHERE id = ?`, c.ID); err != nil {
			return err
		}
		return tx.Commit()
	})
}

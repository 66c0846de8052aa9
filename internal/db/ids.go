package db

import (
	"strings"

	"github.com/google/uuid"
)

const (
	productIDPrefix  = "pd-"
	categoryIDPrefix = "ct-"
	idLength         = 8
)

// NormalizeProductID ensures a product ID has the pd- prefix
// Accepts bare hex IDs like "1a2b3c4d" and returns "pd-1a2b3c4d"
func NormalizeProductID(id string) string {
	return normalizeID(productIDPrefix, id)
}

// NormalizeCategoryID ensures a category ID has the ct- prefix
func NormalizeCategoryID(id string) string {
	return normalizeID(categoryIDPrefix, id)
}

func normalizeID(prefix, id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, prefix) {
		return id
	}
	return prefix + id
}

// newID returns prefix plus the leading hex digits of a random UUID.
func newID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + hex[:idLength]
}

package entity

import (
	"context"

	"confeito/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Ingredients, Clients, Recipes.
type Catalog struct {
	BaseCatalog

	// Name is the display name (unique identity for most catalogs here)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Name:        name,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	return nil
}

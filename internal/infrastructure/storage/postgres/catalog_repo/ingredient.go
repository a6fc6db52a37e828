package catalog_repo

import (
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/ingredient"
	"confeito/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ domain.CatalogRepository[*ingredient.Ingredient] = (*IngredientRepo)(nil)

// IngredientRepo persists ingredients.
type IngredientRepo struct {
	*BaseCatalogRepo[*ingredient.Ingredient]
}

// NewIngredientRepo creates the ingredient repository.
func NewIngredientRepo(txManager *postgres.TxManager) *IngredientRepo {
	return &IngredientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"ingredients",
			postgres.ExtractDBColumns[ingredient.Ingredient](),
			func() *ingredient.Ingredient { return &ingredient.Ingredient{} },
		),
	}
}

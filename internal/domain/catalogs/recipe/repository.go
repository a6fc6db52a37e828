package recipe

import (
	"context"

	"confeito/internal/core/id"
	"confeito/internal/domain"
)

// Repository persists recipes and their owned lines.
type Repository interface {
	domain.CatalogRepository[*Recipe]

	// GetLines loads the ordered line set of a recipe
	GetLines(ctx context.Context, recipeID id.ID) ([]Line, error)

	// GetLinesForRecipes loads lines for several recipes at once
	GetLinesForRecipes(ctx context.Context, recipeIDs []id.ID) (map[id.ID][]Line, error)

	// SaveLines replaces the full line set of a recipe
	SaveLines(ctx context.Context, recipeID id.ID, lines []Line) error

	// DeleteLines removes all lines of a recipe
	DeleteLines(ctx context.Context, recipeID id.ID) error
}

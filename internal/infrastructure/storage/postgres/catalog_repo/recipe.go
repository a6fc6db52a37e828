package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"confeito/internal/core/id"
	"confeito/internal/domain/catalogs/recipe"
	"confeito/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ recipe.Repository = (*RecipeRepo)(nil)

// RecipeRepo persists recipes and their owned lines.
type RecipeRepo struct {
	*BaseCatalogRepo[*recipe.Recipe]
	txManager *postgres.TxManager
}

// NewRecipeRepo creates the recipe repository.
func NewRecipeRepo(txManager *postgres.TxManager) *RecipeRepo {
	return &RecipeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"recipes",
			postgres.ExtractDBColumns[recipe.Recipe](),
			func() *recipe.Recipe { return &recipe.Recipe{} },
		),
		txManager: txManager,
	}
}

// GetLines loads the ordered line set of a recipe.
func (r *RecipeRepo) GetLines(ctx context.Context, recipeID id.ID) ([]recipe.Line, error) {
	q := r.Builder().
		Select("recipe_id", "ingredient_id", "quantity_used", "line_no").
		From("recipe_lines").
		Where(squirrel.Eq{"recipe_id": recipeID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []recipe.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}
	return lines, nil
}

// GetLinesForRecipes loads lines for several recipes at once.
func (r *RecipeRepo) GetLinesForRecipes(ctx context.Context, recipeIDs []id.ID) (map[id.ID][]recipe.Line, error) {
	byRecipe := make(map[id.ID][]recipe.Line, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return byRecipe, nil
	}

	q := r.Builder().
		Select("recipe_id", "ingredient_id", "quantity_used", "line_no").
		From("recipe_lines").
		Where(squirrel.Eq{"recipe_id": recipeIDs}).
		OrderBy("recipe_id", "line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []recipe.Line
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}

	for _, line := range lines {
		byRecipe[line.RecipeID] = append(byRecipe[line.RecipeID], line)
	}
	return byRecipe, nil
}

// SaveLines replaces the full line set of a recipe (delete then insert).
// Callers wrap this together with the recipe row in one transaction.
func (r *RecipeRepo) SaveLines(ctx context.Context, recipeID id.ID, lines []recipe.Line) error {
	if err := r.DeleteLines(ctx, recipeID); err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert("recipe_lines").
		Columns("recipe_id", "ingredient_id", "quantity_used", "line_no")
	for i, line := range lines {
		q = q.Values(recipeID, line.IngredientID, line.QuantityUsed, i+1)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe lines: %w", err)
	}
	return nil
}

// DeleteLines removes all lines of a recipe.
func (r *RecipeRepo) DeleteLines(ctx context.Context, recipeID id.ID) error {
	q := r.Builder().
		Delete("recipe_lines").
		Where(squirrel.Eq{"recipe_id": recipeID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	return nil
}

package recipe

import (
	"context"
	"fmt"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/tx"
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/ingredient"
	"confeito/pkg/logger"
)

// Service provides recipe costing operations.
type Service struct {
	*domain.CatalogService[*Recipe]

	repo        Repository
	ingredients domain.CatalogRepository[*ingredient.Ingredient]
	txManager   tx.Manager
}

// NewService creates the recipe service.
func NewService(repo Repository, ingredients domain.CatalogRepository[*ingredient.Ingredient], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Recipe]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "recipe",
		}),
		repo:        repo,
		ingredients: ingredients,
		txManager:   txManager,
	}
}

// CreateWithLines persists a recipe and its full line set as one unit.
// An empty line set is rejected; on any failure nothing is written.
func (s *Service) CreateWithLines(ctx context.Context, r *Recipe) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}
	if len(r.Lines) == 0 {
		return apperror.NewValidation("recipe must have at least one ingredient line").
			WithDetail("field", "lines")
	}

	// Referenced ingredients must exist (inactive ones are acceptable)
	if _, err := s.resolveIngredients(ctx, r.Lines); err != nil {
		return err
	}

	if err := s.Hooks().RunBeforeCreate(ctx, r); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, r); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := s.repo.SaveLines(ctx, r.ID, r.Lines); err != nil {
			return fmt.Errorf("save recipe lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.Hooks().RunAfterCreate(ctx, r); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", "recipe", "error", err)
	}

	logger.Info(ctx, "recipe created", "name", r.Name, "lines", len(r.Lines))
	return nil
}

// DeleteCascade removes a recipe together with all its lines.
// Deleting a nonexistent recipe is NotFound.
func (s *Service) DeleteCascade(ctx context.Context, recipeID id.ID) error {
	r, err := s.repo.GetByID(ctx, recipeID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("recipe", recipeID.String())
		}
		return err
	}

	if err := s.Hooks().RunBeforeDelete(ctx, r); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteLines(ctx, recipeID); err != nil {
			return fmt.Errorf("delete recipe lines: %w", err)
		}
		if err := s.repo.Delete(ctx, recipeID); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.Hooks().RunAfterDelete(ctx, r); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", "recipe", "error", err)
	}

	logger.Info(ctx, "recipe deleted", "id", recipeID.String())
	return nil
}

// GetWithLines loads a recipe with its line set.
func (s *Service) GetWithLines(ctx context.Context, recipeID id.ID) (*Recipe, error) {
	r, err := s.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLines(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	r.Lines = lines
	return r, nil
}

// CostingFor derives the money figures of a loaded recipe against the
// current ingredient ledger.
func (s *Service) CostingFor(ctx context.Context, r *Recipe) (Costing, error) {
	ingredients, err := s.resolveIngredients(ctx, r.Lines)
	if err != nil {
		return Costing{}, err
	}
	return r.ComputeCosting(ingredients)
}

// ListedRecipe is a recipe with its derived columns, as shown in listings.
// CostingError carries the error code when a figure is undefined (for
// example a referenced ingredient with zero purchased quantity); the
// listing itself never fails for that.
type ListedRecipe struct {
	*Recipe
	Costing      Costing `json:"costing"`
	CostingError string  `json:"costingError,omitempty"`
}

// ListWithCosting lists recipes with computed cost, revenue and profit.
func (s *Service) ListWithCosting(ctx context.Context, f domain.ListFilter) ([]ListedRecipe, int64, error) {
	res, err := s.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if len(res.Items) == 0 {
		return []ListedRecipe{}, res.TotalCount, nil
	}

	recipeIDs := make([]id.ID, 0, len(res.Items))
	for _, r := range res.Items {
		recipeIDs = append(recipeIDs, r.ID)
	}
	linesByRecipe, err := s.repo.GetLinesForRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, 0, err
	}

	var allLines []Line
	for _, r := range res.Items {
		r.Lines = linesByRecipe[r.ID]
		allLines = append(allLines, r.Lines...)
	}
	ingredients, err := s.resolveIngredients(ctx, allLines)
	if err != nil {
		return nil, 0, err
	}

	listed := make([]ListedRecipe, 0, len(res.Items))
	for _, r := range res.Items {
		item := ListedRecipe{Recipe: r}
		costing, err := r.ComputeCosting(ingredients)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				item.CostingError = appErr.Code
			} else {
				return nil, 0, err
			}
		} else {
			item.Costing = costing
		}
		listed = append(listed, item)
	}
	return listed, res.TotalCount, nil
}

// resolveIngredients loads the ingredients referenced by lines,
// deactivated ones included. A missing reference is NotFound.
func (s *Service) resolveIngredients(ctx context.Context, lines []Line) (map[id.ID]*ingredient.Ingredient, error) {
	if len(lines) == 0 {
		return map[id.ID]*ingredient.Ingredient{}, nil
	}

	seen := make(map[id.ID]struct{}, len(lines))
	ids := make([]id.ID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.IngredientID]; ok {
			continue
		}
		seen[line.IngredientID] = struct{}{}
		ids = append(ids, line.IngredientID)
	}

	res, err := s.ingredients.List(ctx, domain.ListFilter{
		IDs:            ids,
		IncludeDeleted: true,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[id.ID]*ingredient.Ingredient, len(res.Items))
	for _, ing := range res.Items {
		byID[ing.ID] = ing
	}
	for _, wanted := range ids {
		if _, ok := byID[wanted]; !ok {
			return nil, apperror.NewNotFound("ingredient", wanted.String())
		}
	}
	return byID, nil
}

// Package recipe implements recipe costing.
package recipe

import (
	"context"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
	"confeito/internal/domain/catalogs/ingredient"
)

// Recipe is a sellable product composed from ingredient lines.
// All money figures are derived on demand from the current ingredient
// ledger; nothing derived is stored.
type Recipe struct {
	entity.Catalog

	// SellingPricePerPortion is the price of one portion
	SellingPricePerPortion types.Money `db:"selling_price" json:"sellingPricePerPortion"`

	// LaborPct and OverheadPct are additive surcharges on ingredient cost
	LaborPct    types.Percent `db:"labor_pct" json:"laborPct"`
	OverheadPct types.Percent `db:"overhead_pct" json:"overheadPct"`

	// Portions is how many sellable units one batch yields
	Portions int `db:"portions" json:"portions"`

	// Lines are owned by the recipe and saved with it atomically
	Lines []Line `db:"-" json:"lines"`
}

// Line is one ingredient requirement of a recipe.
type Line struct {
	RecipeID     id.ID           `db:"recipe_id" json:"recipeId"`
	IngredientID id.ID           `db:"ingredient_id" json:"ingredientId"`
	QuantityUsed decimal.Decimal `db:"quantity_used" json:"quantityUsed"`
	LineNo       int             `db:"line_no" json:"lineNo"`
}

// New creates a Recipe with generated ID.
func New(name string, sellingPrice types.Money, laborPct, overheadPct types.Percent, portions int) *Recipe {
	return &Recipe{
		Catalog:                entity.NewCatalog(name),
		SellingPricePerPortion: sellingPrice,
		LaborPct:               laborPct,
		OverheadPct:            overheadPct,
		Portions:               portions,
	}
}

// AddLine appends an ingredient line.
func (r *Recipe) AddLine(ingredientID id.ID, quantityUsed decimal.Decimal) {
	r.Lines = append(r.Lines, Line{
		RecipeID:     r.ID,
		IngredientID: ingredientID,
		QuantityUsed: quantityUsed,
		LineNo:       len(r.Lines) + 1,
	})
}

// Validate implements entity.Validatable.
func (r *Recipe) Validate(ctx context.Context) error {
	if err := r.Catalog.Validate(ctx); err != nil {
		return err
	}
	if r.SellingPricePerPortion.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPricePerPortion")
	}
	if r.LaborPct.IsNegative() {
		return apperror.NewValidation("labor percentage must not be negative").
			WithDetail("field", "laborPct")
	}
	if r.OverheadPct.IsNegative() {
		return apperror.NewValidation("overhead percentage must not be negative").
			WithDetail("field", "overheadPct")
	}
	if r.Portions < 1 {
		return apperror.NewValidation("portions must be at least 1").
			WithDetail("field", "portions").
			WithDetail("value", r.Portions)
	}
	for _, line := range r.Lines {
		if !line.QuantityUsed.IsPositive() {
			return apperror.NewValidation("line quantity must be positive").
				WithDetail("ingredientId", line.IngredientID.String()).
				WithDetail("value", line.QuantityUsed.String())
		}
	}
	return nil
}

// Costing holds the derived money figures of a recipe.
type Costing struct {
	IngredientCost types.Money `json:"ingredientCost"`
	TotalCost      types.Money `json:"totalCost"`
	TotalRevenue   types.Money `json:"totalRevenue"`
	Profit         types.Money `json:"profit"`
}

// IngredientCost sums unit cost times quantity over all lines.
// Ingredients are resolved from the given map regardless of their active
// flag, so historical recipes keep computing after a deactivation.
func (r *Recipe) IngredientCost(ingredients map[id.ID]*ingredient.Ingredient) (types.Money, error) {
	total := decimal.Zero
	for _, line := range r.Lines {
		ing, ok := ingredients[line.IngredientID]
		if !ok {
			return types.Zero(), apperror.NewNotFound("ingredient", line.IngredientID.String()).
				WithDetail("recipe", r.Name)
		}
		unitCost, err := ing.UnitCost()
		if err != nil {
			return types.Zero(), err
		}
		total = total.Add(unitCost.Mul(line.QuantityUsed))
	}
	return total, nil
}

// TotalCost applies the labor and overhead surcharges to the ingredient
// cost. The percentages are additive on the same base, not compounded:
// cost * (1 + (labor + overhead) / 100).
func (r *Recipe) TotalCost(ingredients map[id.ID]*ingredient.Ingredient) (types.Money, error) {
	ingredientCost, err := r.IngredientCost(ingredients)
	if err != nil {
		return types.Zero(), err
	}
	surcharge := r.LaborPct.Add(r.OverheadPct).Div(types.Hundred)
	return ingredientCost.Mul(decimal.NewFromInt(1).Add(surcharge)), nil
}

// TotalRevenue is selling price per portion times portions.
func (r *Recipe) TotalRevenue() types.Money {
	return r.SellingPricePerPortion.Mul(decimal.NewFromInt(int64(r.Portions)))
}

// ComputeCosting derives all money figures in one pass.
// A recipe with no lines costs zero and its profit equals revenue.
func (r *Recipe) ComputeCosting(ingredients map[id.ID]*ingredient.Ingredient) (Costing, error) {
	ingredientCost, err := r.IngredientCost(ingredients)
	if err != nil {
		return Costing{}, err
	}
	surcharge := r.LaborPct.Add(r.OverheadPct).Div(types.Hundred)
	totalCost := ingredientCost.Mul(decimal.NewFromInt(1).Add(surcharge))
	revenue := r.TotalRevenue()

	return Costing{
		IngredientCost: ingredientCost,
		TotalCost:      totalCost,
		TotalRevenue:   revenue,
		Profit:         revenue.Sub(totalCost),
	}, nil
}

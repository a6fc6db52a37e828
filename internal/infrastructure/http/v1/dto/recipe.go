package dto

import (
	"github.com/shopspring/decimal"
)

// RecipeLineRequest is one ingredient requirement.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredientId" binding:"required"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
}

// CreateRecipeRequest creates a recipe with its full line set.
type CreateRecipeRequest struct {
	Name                   string              `json:"name" binding:"required"`
	SellingPricePerPortion decimal.Decimal     `json:"sellingPricePerPortion"`
	LaborPct               decimal.Decimal     `json:"laborPct"`
	OverheadPct            decimal.Decimal     `json:"overheadPct"`
	Portions               int                 `json:"portions" binding:"required,min=1"`
	Lines                  []RecipeLineRequest `json:"lines" binding:"required"`
}

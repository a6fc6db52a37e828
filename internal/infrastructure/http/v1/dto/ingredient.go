package dto

import (
	"github.com/shopspring/decimal"
)

// SaveIngredientRequest upserts an ingredient by name.
type SaveIngredientRequest struct {
	Name              string          `json:"name" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	PurchasedQuantity decimal.Decimal `json:"purchasedQuantity"`
}

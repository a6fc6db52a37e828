package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one purchased recipe position.
type PurchaseItemRequest struct {
	RecipeID string          `json:"recipeId" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreatePurchaseRequest creates a purchase with its full item set.
type CreatePurchaseRequest struct {
	ClientID        string                `json:"clientId" binding:"required"`
	Date            *time.Time            `json:"date"`
	Comment         string                `json:"comment"`
	FlatDiscount    decimal.Decimal       `json:"flatDiscount"`
	PctDiscount     decimal.Decimal       `json:"pctDiscount"`
	DiscountEnabled bool                  `json:"discountEnabled"`
	Items           []PurchaseItemRequest `json:"items" binding:"required"`
}

// CreatePurchaseResponse returns the new id and the computed total.
type CreatePurchaseResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// PurchaseListQuery filters purchase listings.
type PurchaseListQuery struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	ClientID string     `form:"clientId"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

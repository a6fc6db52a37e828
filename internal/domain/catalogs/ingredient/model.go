// Package ingredient implements the ingredient ledger.
package ingredient

import (
	"context"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
	"confeito/internal/core/types"
)

// Ingredient is a raw material bought in batches.
// The stored figures describe the purchased batch; the per-unit cost is
// always derived, never stored.
type Ingredient struct {
	// Catalog.Name is unique across the ledger
	entity.Catalog

	// TotalPrice is the amount paid for the purchased batch
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// PurchasedQuantity is the batch size in Unit
	PurchasedQuantity decimal.Decimal `db:"purchased_quantity" json:"purchasedQuantity"`

	// Unit is a measurement label, e.g. "kg"
	Unit string `db:"unit" json:"unit"`
}

// New creates an Ingredient with generated ID.
func New(name, unit string, totalPrice types.Money, purchasedQuantity decimal.Decimal) *Ingredient {
	return &Ingredient{
		Catalog:           entity.NewCatalog(name),
		Unit:              unit,
		TotalPrice:        totalPrice,
		PurchasedQuantity: purchasedQuantity,
	}
}

// Validate implements entity.Validatable.
// A zero purchased quantity is storable (the unit cost is then undefined),
// negative figures are not.
func (i *Ingredient) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}
	if i.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if i.TotalPrice.IsNegative() {
		return apperror.NewValidation("total price must not be negative").
			WithDetail("field", "totalPrice").
			WithDetail("value", i.TotalPrice.String())
	}
	if i.PurchasedQuantity.IsNegative() {
		return apperror.NewValidation("purchased quantity must not be negative").
			WithDetail("field", "purchasedQuantity").
			WithDetail("value", i.PurchasedQuantity.String())
	}
	return nil
}

// Active reports whether the ingredient is visible to consuming UIs.
func (i *Ingredient) Active() bool {
	return !i.DeletionMark
}

// UnitCost derives the per-unit cost of the ingredient:
// total batch price divided by purchased quantity.
// Returns DivisionByZero when the purchased quantity is not positive.
func (i *Ingredient) UnitCost() (types.Money, error) {
	if i.TotalPrice.IsNegative() {
		return types.Zero(), apperror.NewValidation("total price must not be negative").
			WithDetail("ingredient", i.Name)
	}
	if !i.PurchasedQuantity.IsPositive() {
		return types.Zero(), apperror.NewDivisionByZero("ingredient", i.ID.String()).
			WithDetail("name", i.Name)
	}
	return i.TotalPrice.Div(i.PurchasedQuantity), nil
}

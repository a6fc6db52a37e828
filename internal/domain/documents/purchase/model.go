// Package purchase implements the purchase ledger.
package purchase

import (
	"context"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
)

// Purchase is a dated client order of recipe items with an optional
// two-part discount. The total is always derived, never stored.
type Purchase struct {
	entity.Document

	// ClientID must reference an existing client
	ClientID id.ID `db:"client_id" json:"clientId"`

	// FlatDiscount is a currency amount subtracted before the
	// percentage stage
	FlatDiscount types.Money `db:"flat_discount" json:"flatDiscount"`

	// PctDiscount is applied to the remainder after the flat stage
	PctDiscount types.Percent `db:"pct_discount" json:"pctDiscount"`

	// DiscountEnabled gates both discount stages. Stored discount
	// values are kept for display but count as zero while disabled.
	DiscountEnabled bool `db:"discount_enabled" json:"discountEnabled"`

	// Items are owned by the purchase and saved with it atomically
	Items []Item `db:"-" json:"items"`
}

// Item is one purchased recipe position.
type Item struct {
	PurchaseID id.ID           `db:"purchase_id" json:"purchaseId"`
	RecipeID   id.ID           `db:"recipe_id" json:"recipeId"`
	Quantity   decimal.Decimal `db:"quantity" json:"quantity"`
	LineNo     int             `db:"line_no" json:"lineNo"`
}

// New creates a Purchase with generated ID dated now.
func New(clientID id.ID) *Purchase {
	return &Purchase{
		Document: entity.NewDocument(),
		ClientID: clientID,
	}
}

// AddItem appends a recipe position.
func (p *Purchase) AddItem(recipeID id.ID, quantity decimal.Decimal) {
	p.Items = append(p.Items, Item{
		PurchaseID: p.ID,
		RecipeID:   recipeID,
		Quantity:   quantity,
		LineNo:     len(p.Items) + 1,
	})
}

// Validate implements entity.Validatable.
func (p *Purchase) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(p.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if len(p.Items) == 0 {
		return apperror.NewValidation("purchase must have at least one item").
			WithDetail("field", "items")
	}
	for _, item := range p.Items {
		if !item.Quantity.IsPositive() {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("recipeId", item.RecipeID.String()).
				WithDetail("value", item.Quantity.String())
		}
	}
	if p.FlatDiscount.IsNegative() {
		return apperror.NewValidation("flat discount must not be negative").
			WithDetail("field", "flatDiscount")
	}
	if p.PctDiscount.IsNegative() || p.PctDiscount.GreaterThan(types.Hundred) {
		return apperror.NewValidation("percentage discount must be between 0 and 100").
			WithDetail("field", "pctDiscount").
			WithDetail("value", p.PctDiscount.String())
	}
	return nil
}

// LineTotal sums selling price times quantity over all items, with recipe
// prices resolved from the given map.
func (p *Purchase) LineTotal(prices map[id.ID]types.Money) (types.Money, error) {
	total := decimal.Zero
	for _, item := range p.Items {
		price, ok := prices[item.RecipeID]
		if !ok {
			return types.Zero(), apperror.NewNotFound("recipe", item.RecipeID.String())
		}
		total = total.Add(price.Mul(item.Quantity))
	}
	return total, nil
}

// Total derives what the client owes.
func (p *Purchase) Total(prices map[id.ID]types.Money) (types.Money, error) {
	lineTotal, err := p.LineTotal(prices)
	if err != nil {
		return types.Zero(), err
	}
	return ComputeTotal(lineTotal, p.FlatDiscount, p.PctDiscount, p.DiscountEnabled), nil
}

// ComputeTotal applies the two-stage discount rule to a line total:
// the flat amount is subtracted first, then the percentage is applied to
// the remainder. The order is fixed and not commutative. While the
// discount flag is off, both stages count as zero. The result clamps
// silently at zero so a discount can never invert a purchase.
func ComputeTotal(lineTotal, flatDiscount types.Money, pctDiscount types.Percent, discountEnabled bool) types.Money {
	if !discountEnabled {
		return types.ClampNonNegative(lineTotal)
	}
	remainder := lineTotal.Sub(flatDiscount)
	total := remainder.Mul(decimal.NewFromInt(1).Sub(pctDiscount.Div(types.Hundred)))
	return types.ClampNonNegative(total)
}

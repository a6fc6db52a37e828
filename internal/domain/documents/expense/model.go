// Package expense implements operating expense tracking.
package expense

import (
	"context"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
	"confeito/internal/core/types"
)

// Category classifies an expense. A closed enum stored as text, so
// adding a category is an additive change.
type Category string

const (
	CategoryInvestment Category = "investment"
	CategoryMaterial   Category = "material"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryInvestment, CategoryMaterial:
		return true
	}
	return false
}

// Expense is a dated operating cost.
type Expense struct {
	entity.Document

	Description string      `db:"description" json:"description"`
	Amount      types.Money `db:"amount" json:"amount"`
	Category    Category    `db:"category" json:"category"`
}

// New creates an Expense with generated ID dated now.
func New(description string, amount types.Money, category Category) *Expense {
	return &Expense{
		Document:    entity.NewDocument(),
		Description: description,
		Amount:      amount,
		Category:    category,
	}
}

// Validate implements entity.Validatable.
func (e *Expense) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}
	if e.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if !e.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", e.Amount.String())
	}
	if !e.Category.Valid() {
		return apperror.NewValidation("unknown expense category").
			WithDetail("field", "category").
			WithDetail("value", string(e.Category))
	}
	return nil
}

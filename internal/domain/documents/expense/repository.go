package expense

import (
	"context"
	"time"

	"confeito/internal/core/id"
)

// Filter narrows expense listings.
type Filter struct {
	// Search matches a description substring
	Search string

	// Category restricts to one category
	Category *Category

	// From/To bound the document date (inclusive)
	From *time.Time
	To   *time.Time

	Limit  int
	Offset int
}

// ListResult is a page of expenses.
type ListResult struct {
	Items      []*Expense
	TotalCount int64
}

// Repository persists expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, expenseID id.ID) (*Expense, error)
	Delete(ctx context.Context, expenseID id.ID) error
	List(ctx context.Context, f Filter) (ListResult, error)
}

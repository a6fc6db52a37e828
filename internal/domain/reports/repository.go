package reports

import (
	"context"
	"time"
)

// Repository reads the raw rows the aggregation engine works on.
// Date bounds form the half-open interval [from, to); nil means unbounded.
type Repository interface {
	// PurchaseTotals returns one row per purchase in the interval,
	// with its pre-discount line total already summed
	PurchaseTotals(ctx context.Context, from, to *time.Time) ([]PurchaseTotalRow, error)

	// Expenses returns expenses in the interval
	Expenses(ctx context.Context, from, to *time.Time) ([]ExpenseRow, error)
}

// Package reports implements the aggregation engine: monthly series and
// client ranking.
package reports

import (
	"time"

	"confeito/internal/core/id"
	"confeito/internal/core/types"
)

// MonthKey is the calendar-month bucket format (YYYY-MM).
const MonthKey = "2006-01"

// MonthlyRow is one month of the aggregate series. All series are always
// equal-length and aligned: a month without data appears with zeros.
type MonthlyRow struct {
	Month             string      `json:"month"` // YYYY-MM
	Purchases         types.Money `json:"purchases"`
	InvestmentExpense types.Money `json:"investmentExpense"`
	MaterialExpense   types.Money `json:"materialExpense"`
	TotalExpense      types.Money `json:"totalExpense"`
	Net               types.Money `json:"net"`
}

// Scope is the time window of a client ranking.
type Scope string

const (
	ScopeAllTime      Scope = "all_time"
	ScopeCurrentMonth Scope = "current_month"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeAllTime || s == ScopeCurrentMonth
}

// TopClient is one row of the client ranking.
type TopClient struct {
	ClientID id.ID       `json:"clientId"`
	Name     string      `json:"name"`
	Total    types.Money `json:"total"`
}

// PurchaseTotalRow is the raw purchase data the engine aggregates.
// LineTotal is the pre-discount sum of price times quantity; the
// discount stages are applied in Go so the formula lives in one place.
type PurchaseTotalRow struct {
	PurchaseID      id.ID         `db:"purchase_id"`
	ClientID        id.ID         `db:"client_id"`
	ClientName      string        `db:"client_name"`
	Date            time.Time     `db:"date"`
	LineTotal       types.Money   `db:"line_total"`
	FlatDiscount    types.Money   `db:"flat_discount"`
	PctDiscount     types.Percent `db:"pct_discount"`
	DiscountEnabled bool          `db:"discount_enabled"`
}

// ExpenseRow is the raw expense data the engine aggregates.
type ExpenseRow struct {
	Date     time.Time   `db:"date"`
	Category string      `db:"category"`
	Amount   types.Money `db:"amount"`
}

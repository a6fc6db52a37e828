package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest creates an expense.
type CreateExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"required"`
	Date        *time.Time      `json:"date"`
	Comment     string          `json:"comment"`
}

// ExpenseListQuery filters expense listings.
type ExpenseListQuery struct {
	Search   string     `form:"search"`
	Category string     `form:"category"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Limit    int        `form:"limit"`
	Offset   int        `form:"offset"`
}

// Package types provides domain value types shared across the engine.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with exact decimal arithmetic.
// Never use float64 for money.
type Money = decimal.Decimal

// Percent represents a percentage value (e.g. 15 means 15%).
type Percent = decimal.Decimal

// MustMoney parses Money and panics on failure. Use only for constants and tests.
func MustMoney(s string) Money {
	return decimal.RequireFromString(s)
}

// Zero is the zero monetary amount.
func Zero() Money {
	return decimal.Zero
}

// Hundred is used for percent-to-fraction conversion.
var Hundred = decimal.NewFromInt(100)

// ClampNonNegative returns zero when amount is negative, amount otherwise.
func ClampNonNegative(amount Money) Money {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

package ingredient

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/apperror"
	"confeito/internal/core/types"
)

func TestUnitCost(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity string
		want     string
		wantErr  string
	}{
		{name: "whole units", price: "10", quantity: "2", want: "5"},
		{name: "fractional result", price: "10", quantity: "3", want: "3.3333333333333333"},
		{name: "fractional quantity", price: "7.5", quantity: "0.5", want: "15"},
		{name: "zero quantity", price: "10", quantity: "0", wantErr: apperror.CodeDivisionByZero},
		{name: "negative quantity", price: "10", quantity: "-1", wantErr: apperror.CodeDivisionByZero},
		{name: "negative price", price: "-10", quantity: "2", wantErr: apperror.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := New("flour", "kg", types.MustMoney(tt.price), decimal.RequireFromString(tt.quantity))

			got, err := ing.UnitCost()
			if tt.wantErr != "" {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(types.MustMoney(tt.want)), "want %s got %s", tt.want, got)
		})
	}
}

func TestUnitCost_RoundTripsToTotalPrice(t *testing.T) {
	ing := New("sugar", "kg", types.MustMoney("12.34"), decimal.RequireFromString("7"))

	unitCost, err := ing.UnitCost()
	require.NoError(t, err)

	back := unitCost.Mul(ing.PurchasedQuantity)
	diff := back.Sub(ing.TotalPrice).Abs()
	assert.True(t, diff.LessThan(decimal.RequireFromString("0.0000000001")),
		"unitCost*quantity should reproduce total price, diff %s", diff)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ingredient)
		wantErr bool
	}{
		{name: "valid", mutate: func(i *Ingredient) {}},
		{name: "zero quantity is storable", mutate: func(i *Ingredient) {
			i.PurchasedQuantity = decimal.Zero
		}},
		{name: "empty name", mutate: func(i *Ingredient) { i.Name = "" }, wantErr: true},
		{name: "empty unit", mutate: func(i *Ingredient) { i.Unit = "" }, wantErr: true},
		{name: "negative price", mutate: func(i *Ingredient) {
			i.TotalPrice = types.MustMoney("-1")
		}, wantErr: true},
		{name: "negative quantity", mutate: func(i *Ingredient) {
			i.PurchasedQuantity = decimal.RequireFromString("-1")
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := New("butter", "kg", types.MustMoney("25"), decimal.RequireFromString("2"))
			tt.mutate(ing)

			err := ing.Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package purchase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/id"
	"confeito/internal/core/types"
)

func TestComputeTotal_DiscountOrderIsFlatThenPercent(t *testing.T) {
	// (100 - 10) * 0.9 = 81, not 100*0.9 - 10 = 80
	total := ComputeTotal(types.MustMoney("100"), types.MustMoney("10"), types.MustMoney("10"), true)
	assert.True(t, total.Equal(types.MustMoney("81")), "got %s", total)
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		flat     string
		pct      string
		enabled  bool
		want     string
	}{
		{name: "no discount", line: "100", flat: "0", pct: "0", enabled: true, want: "100"},
		{name: "flat only", line: "100", flat: "25", pct: "0", enabled: true, want: "75"},
		{name: "percent only", line: "200", flat: "0", pct: "50", enabled: true, want: "100"},
		{name: "both stages", line: "100", flat: "10", pct: "10", enabled: true, want: "81"},
		{name: "disabled flag zeroes stored values", line: "100", flat: "10", pct: "10", enabled: false, want: "100"},
		{name: "flat exceeding line total clamps to zero", line: "50", flat: "80", pct: "0", enabled: true, want: "0"},
		{name: "full percent discount", line: "50", flat: "0", pct: "100", enabled: true, want: "0"},
		{name: "overdiscount stays clamped", line: "30", flat: "100", pct: "50", enabled: true, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := ComputeTotal(
				types.MustMoney(tt.line),
				types.MustMoney(tt.flat),
				types.MustMoney(tt.pct),
				tt.enabled,
			)
			assert.True(t, total.Equal(types.MustMoney(tt.want)), "want %s got %s", tt.want, total)
		})
	}
}

func TestComputeTotal_NeverNegative(t *testing.T) {
	lines := []string{"0", "1", "50", "99.99", "1000"}
	flats := []string{"0", "10", "100", "5000"}
	pcts := []string{"0", "10", "50", "100"}

	for _, line := range lines {
		for _, flat := range flats {
			for _, pct := range pcts {
				total := ComputeTotal(types.MustMoney(line), types.MustMoney(flat), types.MustMoney(pct), true)
				assert.False(t, total.IsNegative(),
					"line=%s flat=%s pct=%s produced negative total %s", line, flat, pct, total)
			}
		}
	}
}

func TestPurchaseTotal(t *testing.T) {
	cakeID, pieID := id.New(), id.New()
	prices := map[id.ID]types.Money{
		cakeID: types.MustMoney("20"),
		pieID:  types.MustMoney("15"),
	}

	p := New(id.New())
	p.AddItem(cakeID, decimal.RequireFromString("3")) // 60
	p.AddItem(pieID, decimal.RequireFromString("2"))  // 30
	p.FlatDiscount = types.MustMoney("10")
	p.PctDiscount = types.MustMoney("10")
	p.DiscountEnabled = true

	total, err := p.Total(prices)
	require.NoError(t, err)
	// (90 - 10) * 0.9 = 72
	assert.True(t, total.Equal(types.MustMoney("72")), "got %s", total)
}

func TestPurchaseTotal_UnknownRecipe(t *testing.T) {
	p := New(id.New())
	p.AddItem(id.New(), decimal.RequireFromString("1"))

	_, err := p.Total(map[id.ID]types.Money{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Purchase {
		p := New(id.New())
		p.AddItem(id.New(), decimal.RequireFromString("2"))
		return p
	}

	tests := []struct {
		name    string
		mutate  func(*Purchase)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Purchase) {}},
		{name: "nil client", mutate: func(p *Purchase) { p.ClientID = id.Nil }, wantErr: true},
		{name: "no items", mutate: func(p *Purchase) { p.Items = nil }, wantErr: true},
		{name: "zero quantity item", mutate: func(p *Purchase) {
			p.AddItem(id.New(), decimal.Zero)
		}, wantErr: true},
		{name: "negative flat discount", mutate: func(p *Purchase) {
			p.FlatDiscount = types.MustMoney("-1")
		}, wantErr: true},
		{name: "percent above 100", mutate: func(p *Purchase) {
			p.PctDiscount = types.MustMoney("101")
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)

			err := p.Validate(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

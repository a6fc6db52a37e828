package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
)

type fakeRepo struct {
	purchases []PurchaseTotalRow
	expenses  []ExpenseRow
}

func (f *fakeRepo) PurchaseTotals(ctx context.Context, from, to *time.Time) ([]PurchaseTotalRow, error) {
	var out []PurchaseTotalRow
	for _, row := range f.purchases {
		if from != nil && row.Date.Before(*from) {
			continue
		}
		if to != nil && !row.Date.Before(*to) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeRepo) Expenses(ctx context.Context, from, to *time.Time) ([]ExpenseRow, error) {
	var out []ExpenseRow
	for _, row := range f.expenses {
		if from != nil && row.Date.Before(*from) {
			continue
		}
		if to != nil && !row.Date.Before(*to) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func purchaseRow(clientID id.ID, name string, date time.Time, lineTotal, flat, pct string, enabled bool) PurchaseTotalRow {
	return PurchaseTotalRow{
		PurchaseID:      id.New(),
		ClientID:        clientID,
		ClientName:      name,
		Date:            date,
		LineTotal:       types.MustMoney(lineTotal),
		FlatDiscount:    types.MustMoney(flat),
		PctDiscount:     types.MustMoney(pct),
		DiscountEnabled: enabled,
	}
}

func TestMonthlySeries_ZeroFillsEmptyMonths(t *testing.T) {
	clientID := id.New()
	repo := &fakeRepo{
		purchases: []PurchaseTotalRow{
			purchaseRow(clientID, "Ana", day(2023, time.February, 14), "100", "0", "0", false),
		},
		expenses: []ExpenseRow{
			{Date: day(2023, time.February, 3), Category: "material", Amount: types.MustMoney("30")},
		},
	}
	svc := NewService(repo)

	series, err := svc.MonthlySeries(context.Background(), "2023-01", "2023-03")
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, "2023-01", series[0].Month)
	assert.True(t, series[0].Purchases.IsZero())
	assert.True(t, series[0].Net.IsZero())

	assert.Equal(t, "2023-02", series[1].Month)
	assert.True(t, series[1].Purchases.Equal(types.MustMoney("100")))
	assert.True(t, series[1].MaterialExpense.Equal(types.MustMoney("30")))
	assert.True(t, series[1].TotalExpense.Equal(types.MustMoney("30")))
	assert.True(t, series[1].Net.Equal(types.MustMoney("70")))

	assert.Equal(t, "2023-03", series[2].Month)
	assert.True(t, series[2].Purchases.IsZero())
}

func TestMonthlySeries_AppliesDiscountsAndSplitsCategories(t *testing.T) {
	clientID := id.New()
	repo := &fakeRepo{
		purchases: []PurchaseTotalRow{
			// (100-10)*0.9 = 81
			purchaseRow(clientID, "Ana", day(2024, time.May, 2), "100", "10", "10", true),
			// disabled flag: stored discounts ignored
			purchaseRow(clientID, "Ana", day(2024, time.May, 20), "50", "40", "90", false),
		},
		expenses: []ExpenseRow{
			{Date: day(2024, time.May, 5), Category: "investment", Amount: types.MustMoney("20")},
			{Date: day(2024, time.May, 6), Category: "material", Amount: types.MustMoney("11")},
		},
	}
	svc := NewService(repo)

	series, err := svc.MonthlySeries(context.Background(), "2024-05", "2024-05")
	require.NoError(t, err)
	require.Len(t, series, 1)

	row := series[0]
	assert.True(t, row.Purchases.Equal(types.MustMoney("131")), "got %s", row.Purchases)
	assert.True(t, row.InvestmentExpense.Equal(types.MustMoney("20")))
	assert.True(t, row.MaterialExpense.Equal(types.MustMoney("11")))
	assert.True(t, row.TotalExpense.Equal(types.MustMoney("31")))
	assert.True(t, row.Net.Equal(types.MustMoney("100")), "got %s", row.Net)
}

func TestMonthlySeries_InvalidRange(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.MonthlySeries(context.Background(), "2024-06", "2024-01")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidRange, appErr.Code)
}

func TestMonthlySeries_BadMonthFormat(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.MonthlySeries(context.Background(), "January", "2024-01")
	assert.Error(t, err)
}

func TestTopClients_RanksByPostDiscountSpend(t *testing.T) {
	big, small := id.New(), id.New()
	repo := &fakeRepo{
		purchases: []PurchaseTotalRow{
			purchaseRow(small, "Bia", day(2024, time.January, 1), "50", "0", "0", false),
			purchaseRow(big, "Ana", day(2024, time.February, 1), "100", "0", "50", true), // 50
			purchaseRow(big, "Ana", day(2024, time.March, 1), "60", "0", "0", false),     // 60
		},
	}
	svc := NewService(repo)

	ranked, err := svc.TopClients(context.Background(), 5, ScopeAllTime)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, big, ranked[0].ClientID)
	assert.True(t, ranked[0].Total.Equal(types.MustMoney("110")))
	assert.Equal(t, small, ranked[1].ClientID)
	assert.True(t, ranked[1].Total.Equal(types.MustMoney("50")))
}

func TestTopClients_TiesBreakByClientID(t *testing.T) {
	a := id.MustParse("00000000-0000-0000-0000-00000000000a")
	b := id.MustParse("00000000-0000-0000-0000-00000000000b")
	repo := &fakeRepo{
		purchases: []PurchaseTotalRow{
			// insertion order deliberately reversed relative to ids
			purchaseRow(b, "Bia", day(2024, time.January, 2), "70", "0", "0", false),
			purchaseRow(a, "Ana", day(2024, time.January, 3), "70", "0", "0", false),
		},
	}
	svc := NewService(repo)

	ranked, err := svc.TopClients(context.Background(), 2, ScopeAllTime)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, a, ranked[0].ClientID)
	assert.Equal(t, b, ranked[1].ClientID)
}

func TestTopClients_CurrentMonthScope(t *testing.T) {
	clientID := id.New()
	repo := &fakeRepo{
		purchases: []PurchaseTotalRow{
			purchaseRow(clientID, "Ana", day(2024, time.June, 10), "40", "0", "0", false),
			purchaseRow(clientID, "Ana", day(2024, time.May, 10), "999", "0", "0", false),
		},
	}
	svc := NewService(repo)
	svc.now = func() time.Time { return day(2024, time.June, 15) }

	ranked, err := svc.TopClients(context.Background(), 3, ScopeCurrentMonth)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.True(t, ranked[0].Total.Equal(types.MustMoney("40")))
}

func TestTopClients_NonPositiveN(t *testing.T) {
	svc := NewService(&fakeRepo{})

	for _, n := range []int{0, -3} {
		ranked, err := svc.TopClients(context.Background(), n, ScopeAllTime)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	}
}

func TestTopClients_LimitsToN(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 5; i++ {
		repo.purchases = append(repo.purchases,
			purchaseRow(id.New(), "c", day(2024, time.January, 1+i), "10", "0", "0", false))
	}
	svc := NewService(repo)

	ranked, err := svc.TopClients(context.Background(), 3, ScopeAllTime)
	require.NoError(t, err)
	assert.Len(t, ranked, 3)
}

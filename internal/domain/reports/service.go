package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/types"
	"confeito/internal/domain/documents/expense"
	"confeito/internal/domain/documents/purchase"
)

// Service is the aggregation engine.
type Service struct {
	repo Repository

	// now is swappable for tests
	now func() time.Time
}

// NewService creates the reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthKey, s)
	if err != nil {
		return time.Time{}, apperror.NewValidation("month must be in YYYY-MM format").
			WithDetail("value", s)
	}
	return t, nil
}

// MonthlySeries produces the aligned monthly series over the inclusive
// [from, to] month range. Every month in the range appears, zero-filled
// when it has no data. from > to is InvalidRange.
func (s *Service) MonthlySeries(ctx context.Context, fromStr, toStr string) ([]MonthlyRow, error) {
	from, err := ParseMonth(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := ParseMonth(toStr)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, apperror.NewInvalidRange(fromStr, toStr)
	}

	// Materialize every month of the range up front so the series stay
	// aligned even when a month has no rows.
	type bucket struct {
		purchases  decimal.Decimal
		investment decimal.Decimal
		material   decimal.Decimal
	}
	var months []string
	buckets := make(map[string]*bucket)
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		key := m.Format(MonthKey)
		months = append(months, key)
		buckets[key] = &bucket{
			purchases:  decimal.Zero,
			investment: decimal.Zero,
			material:   decimal.Zero,
		}
	}

	rangeStart := from
	rangeEnd := to.AddDate(0, 1, 0) // first day after the last month

	purchases, err := s.repo.PurchaseTotals(ctx, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, err
	}
	for _, row := range purchases {
		b, ok := buckets[row.Date.Format(MonthKey)]
		if !ok {
			continue
		}
		total := purchase.ComputeTotal(row.LineTotal, row.FlatDiscount, row.PctDiscount, row.DiscountEnabled)
		b.purchases = b.purchases.Add(total)
	}

	expenses, err := s.repo.Expenses(ctx, &rangeStart, &rangeEnd)
	if err != nil {
		return nil, err
	}
	for _, row := range expenses {
		b, ok := buckets[row.Date.Format(MonthKey)]
		if !ok {
			continue
		}
		switch expense.Category(row.Category) {
		case expense.CategoryInvestment:
			b.investment = b.investment.Add(row.Amount)
		case expense.CategoryMaterial:
			b.material = b.material.Add(row.Amount)
		}
	}

	series := make([]MonthlyRow, 0, len(months))
	for _, key := range months {
		b := buckets[key]
		totalExpense := b.investment.Add(b.material)
		series = append(series, MonthlyRow{
			Month:             key,
			Purchases:         b.purchases,
			InvestmentExpense: b.investment,
			MaterialExpense:   b.material,
			TotalExpense:      totalExpense,
			Net:               b.purchases.Sub(totalExpense),
		})
	}
	return series, nil
}

// TopClients ranks clients by their post-discount purchase totals within
// the scope, descending, ties broken by client id ascending. n <= 0
// yields an empty result, not an error.
func (s *Service) TopClients(ctx context.Context, n int, scope Scope) ([]TopClient, error) {
	if n <= 0 {
		return []TopClient{}, nil
	}
	if !scope.Valid() {
		return nil, apperror.NewValidation("unknown ranking scope").
			WithDetail("value", string(scope))
	}

	var from, to *time.Time
	if scope == ScopeCurrentMonth {
		now := s.now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}

	rows, err := s.repo.PurchaseTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totals := make(map[id.ID]*TopClient)
	for _, row := range rows {
		entry, ok := totals[row.ClientID]
		if !ok {
			entry = &TopClient{ClientID: row.ClientID, Name: row.ClientName, Total: types.Zero()}
			totals[row.ClientID] = entry
		}
		total := purchase.ComputeTotal(row.LineTotal, row.FlatDiscount, row.PctDiscount, row.DiscountEnabled)
		entry.Total = entry.Total.Add(total)
	}

	ranked := make([]TopClient, 0, len(totals))
	for _, entry := range totals {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].Total.Equal(ranked[j].Total) {
			return ranked[i].Total.GreaterThan(ranked[j].Total)
		}
		return ranked[i].ClientID.String() < ranked[j].ClientID.String()
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// Package report_repo reads the raw rows the aggregation engine works on.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"confeito/internal/domain/reports"
	"confeito/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements report queries over purchases and expenses.
// Line totals are summed in SQL; the discount formula stays in Go so it
// lives in one place.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates the report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

func (r *ReportRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// PurchaseTotals returns one row per purchase in the half-open interval
// [from, to), with its pre-discount line total already summed.
func (r *ReportRepo) PurchaseTotals(ctx context.Context, from, to *time.Time) ([]reports.PurchaseTotalRow, error) {
	q := r.builder().
		Select(
			"p.id AS purchase_id",
			"p.client_id",
			"c.name AS client_name",
			"p.date",
			"COALESCE(SUM(rc.selling_price * pi.quantity), 0) AS line_total",
			"p.flat_discount",
			"p.pct_discount",
			"p.discount_enabled",
		).
		From("purchases p").
		Join("clients c ON c.id = p.client_id").
		LeftJoin("purchase_items pi ON pi.purchase_id = p.id").
		LeftJoin("recipes rc ON rc.id = pi.recipe_id").
		GroupBy("p.id", "p.client_id", "c.name", "p.date", "p.flat_discount", "p.pct_discount", "p.discount_enabled")

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"p.date": *from})
	}
	if to != nil {
		q = q.Where(squirrel.Lt{"p.date": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.PurchaseTotalRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("purchase totals: %w", err)
	}
	return rows, nil
}

// Expenses returns expenses in the half-open interval [from, to).
func (r *ReportRepo) Expenses(ctx context.Context, from, to *time.Time) ([]reports.ExpenseRow, error) {
	q := r.builder().
		Select("date", "category", "amount").
		From("expenses")

	if from != nil {
		q = q.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		q = q.Where(squirrel.Lt{"date": *to})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.ExpenseRow
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("expenses: %w", err)
	}
	return rows, nil
}

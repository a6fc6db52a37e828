package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"confeito/internal/core/id"
	"confeito/internal/domain/documents/purchase"
	"confeito/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ purchase.Repository = (*PurchaseRepo)(nil)

// PurchaseRepo persists purchases and their owned items.
type PurchaseRepo struct {
	*BaseDocumentRepo[*purchase.Purchase]
}

// NewPurchaseRepo creates the purchase repository.
func NewPurchaseRepo(txManager *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			"purchases",
			postgres.ExtractDBColumns[purchase.Purchase](),
			func() *purchase.Purchase { return &purchase.Purchase{} },
		),
	}
}

// List retrieves purchases filtered by date range and client.
func (r *PurchaseRepo) List(ctx context.Context, f purchase.Filter) (purchase.ListResult, error) {
	var result purchase.ListResult

	q := r.baseSelect(ctx)

	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.To})
	}
	if f.ClientID != nil {
		q = q.Where(squirrel.Eq{"client_id": *f.ClientID})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("date DESC", "created_at DESC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list purchases: %w", err)
	}

	return result, nil
}

// GetItems loads the ordered item set of a purchase.
func (r *PurchaseRepo) GetItems(ctx context.Context, purchaseID id.ID) ([]purchase.Item, error) {
	q := r.Builder().
		Select("purchase_id", "recipe_id", "quantity", "line_no").
		From("purchase_items").
		Where(squirrel.Eq{"purchase_id": purchaseID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []purchase.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	return items, nil
}

// GetItemsForPurchases loads items for several purchases at once.
func (r *PurchaseRepo) GetItemsForPurchases(ctx context.Context, purchaseIDs []id.ID) (map[id.ID][]purchase.Item, error) {
	byPurchase := make(map[id.ID][]purchase.Item, len(purchaseIDs))
	if len(purchaseIDs) == 0 {
		return byPurchase, nil
	}

	q := r.Builder().
		Select("purchase_id", "recipe_id", "quantity", "line_no").
		From("purchase_items").
		Where(squirrel.Eq{"purchase_id": purchaseIDs}).
		OrderBy("purchase_id", "line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []purchase.Item
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}

	for _, item := range items {
		byPurchase[item.PurchaseID] = append(byPurchase[item.PurchaseID], item)
	}
	return byPurchase, nil
}

// SaveItems replaces the full item set of a purchase (delete then insert).
// Callers wrap this together with the purchase row in one transaction.
func (r *PurchaseRepo) SaveItems(ctx context.Context, purchaseID id.ID, items []purchase.Item) error {
	if err := r.DeleteItems(ctx, purchaseID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().
		Insert("purchase_items").
		Columns("purchase_id", "recipe_id", "quantity", "line_no")
	for i, item := range items {
		q = q.Values(purchaseID, item.RecipeID, item.Quantity, i+1)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase items: %w", err)
	}
	return nil
}

// DeleteItems removes all items of a purchase.
func (r *PurchaseRepo) DeleteItems(ctx context.Context, purchaseID id.ID) error {
	q := r.Builder().
		Delete("purchase_items").
		Where(squirrel.Eq{"purchase_id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return nil
}

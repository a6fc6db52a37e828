package purchase

import (
	"context"
	"time"

	"confeito/internal/core/id"
)

// Filter narrows purchase listings.
type Filter struct {
	// From/To bound the document date (inclusive)
	From *time.Time
	To   *time.Time

	// ClientID restricts to one client
	ClientID *id.ID

	Limit  int
	Offset int
}

// ListResult is a page of purchases.
type ListResult struct {
	Items      []*Purchase
	TotalCount int64
}

// Repository persists purchases and their owned items.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)

	// Delete removes the purchase row (items are deleted separately,
	// inside the same transaction)
	Delete(ctx context.Context, purchaseID id.ID) error

	List(ctx context.Context, f Filter) (ListResult, error)

	GetItems(ctx context.Context, purchaseID id.ID) ([]Item, error)
	GetItemsForPurchases(ctx context.Context, purchaseIDs []id.ID) (map[id.ID][]Item, error)

	// SaveItems replaces the full item set of a purchase
	SaveItems(ctx context.Context, purchaseID id.ID, items []Item) error
	DeleteItems(ctx context.Context, purchaseID id.ID) error
}

package purchase

import (
	"context"
	"fmt"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/tx"
	"confeito/internal/core/types"
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/client"
	"confeito/internal/domain/catalogs/recipe"
	"confeito/pkg/logger"
)

// Service provides purchase ledger operations.
type Service struct {
	repo      Repository
	clients   domain.CatalogRepository[*client.Client]
	recipes   recipe.Repository
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Purchase]
}

// NewService creates the purchase service.
func NewService(repo Repository, clients domain.CatalogRepository[*client.Client], recipes recipe.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		clients:   clients,
		recipes:   recipes,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Purchase](),
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service) Hooks() *domain.HookRegistry[*Purchase] {
	return s.hooks
}

// Create persists a purchase and its items as one unit and returns the
// computed total. On any validation failure nothing is written.
func (s *Service) Create(ctx context.Context, p *Purchase) (types.Money, error) {
	if err := p.Validate(ctx); err != nil {
		return types.Zero(), err
	}

	exists, err := s.clients.Exists(ctx, p.ClientID)
	if err != nil {
		return types.Zero(), err
	}
	if !exists {
		return types.Zero(), apperror.NewNotFound("client", p.ClientID.String())
	}

	prices, err := s.resolvePrices(ctx, p.Items)
	if err != nil {
		return types.Zero(), err
	}
	total, err := p.Total(prices)
	if err != nil {
		return types.Zero(), err
	}

	if err := s.hooks.RunBeforeCreate(ctx, p); err != nil {
		return types.Zero(), err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		if err := s.repo.SaveItems(ctx, p.ID, p.Items); err != nil {
			return fmt.Errorf("save purchase items: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Zero(), err
	}

	if err := s.hooks.RunAfterCreate(ctx, p); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", "purchase", "error", err)
	}

	logger.Info(ctx, "purchase created",
		"client_id", p.ClientID.String(), "items", len(p.Items), "total", total.String())
	return total, nil
}

// Delete removes a purchase together with all its items.
func (s *Service) Delete(ctx context.Context, purchaseID id.ID) error {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound("purchase", purchaseID.String())
		}
		return err
	}

	if err := s.hooks.RunBeforeDelete(ctx, p); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteItems(ctx, purchaseID); err != nil {
			return fmt.Errorf("delete purchase items: %w", err)
		}
		if err := s.repo.Delete(ctx, purchaseID); err != nil {
			return fmt.Errorf("delete purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterDelete(ctx, p); err != nil {
		logger.Warn(ctx, "after-delete hook failed", "entity", "purchase", "error", err)
	}

	logger.Info(ctx, "purchase deleted", "id", purchaseID.String())
	return nil
}

// ListedPurchase is a purchase with the display columns of a listing.
type ListedPurchase struct {
	*Purchase
	ClientName string      `json:"clientName"`
	Total      types.Money `json:"total"`
}

// Get loads a purchase with items and its computed total.
func (s *Service) Get(ctx context.Context, purchaseID id.ID) (*ListedPurchase, error) {
	p, err := s.repo.GetByID(ctx, purchaseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID.String())
		}
		return nil, err
	}
	items, err := s.repo.GetItems(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	p.Items = items

	views, err := s.decorate(ctx, []*Purchase{p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List returns purchases with client names and computed totals.
func (s *Service) List(ctx context.Context, f Filter) ([]ListedPurchase, int64, error) {
	res, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	if len(res.Items) == 0 {
		return []ListedPurchase{}, res.TotalCount, nil
	}

	purchaseIDs := make([]id.ID, 0, len(res.Items))
	for _, p := range res.Items {
		purchaseIDs = append(purchaseIDs, p.ID)
	}
	itemsByPurchase, err := s.repo.GetItemsForPurchases(ctx, purchaseIDs)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range res.Items {
		p.Items = itemsByPurchase[p.ID]
	}

	views, err := s.decorate(ctx, res.Items)
	if err != nil {
		return nil, 0, err
	}
	return views, res.TotalCount, nil
}

func (s *Service) decorate(ctx context.Context, purchases []*Purchase) ([]ListedPurchase, error) {
	clientIDs := make([]id.ID, 0, len(purchases))
	seenClients := make(map[id.ID]struct{}, len(purchases))
	var items []Item
	for _, p := range purchases {
		if _, ok := seenClients[p.ClientID]; !ok {
			seenClients[p.ClientID] = struct{}{}
			clientIDs = append(clientIDs, p.ClientID)
		}
		items = append(items, p.Items...)
	}

	clientsRes, err := s.clients.List(ctx, domain.ListFilter{IDs: clientIDs, IncludeDeleted: true})
	if err != nil {
		return nil, err
	}
	clientNames := make(map[id.ID]string, len(clientsRes.Items))
	for _, c := range clientsRes.Items {
		clientNames[c.ID] = c.Name
	}

	prices, err := s.resolvePrices(ctx, items)
	if err != nil {
		return nil, err
	}

	views := make([]ListedPurchase, 0, len(purchases))
	for _, p := range purchases {
		total, err := p.Total(prices)
		if err != nil {
			return nil, err
		}
		views = append(views, ListedPurchase{
			Purchase:   p,
			ClientName: clientNames[p.ClientID],
			Total:      total,
		})
	}
	return views, nil
}

// resolvePrices loads selling prices of the referenced recipes,
// inactive ones included. A missing reference is NotFound.
func (s *Service) resolvePrices(ctx context.Context, items []Item) (map[id.ID]types.Money, error) {
	if len(items) == 0 {
		return map[id.ID]types.Money{}, nil
	}

	seen := make(map[id.ID]struct{}, len(items))
	ids := make([]id.ID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.RecipeID]; ok {
			continue
		}
		seen[item.RecipeID] = struct{}{}
		ids = append(ids, item.RecipeID)
	}

	res, err := s.recipes.List(ctx, domain.ListFilter{IDs: ids, IncludeDeleted: true})
	if err != nil {
		return nil, err
	}
	prices := make(map[id.ID]types.Money, len(res.Items))
	for _, r := range res.Items {
		prices[r.ID] = r.SellingPricePerPortion
	}
	for _, wanted := range ids {
		if _, ok := prices[wanted]; !ok {
			return nil, apperror.NewNotFound("recipe", wanted.String())
		}
	}
	return prices, nil
}

package ingredient

import (
	"context"

	"github.com/shopspring/decimal"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/tx"
	"confeito/internal/core/types"
	"confeito/internal/domain"
	"confeito/pkg/logger"
)

// Service provides ingredient ledger operations.
type Service struct {
	*domain.CatalogService[*Ingredient]

	repo      domain.CatalogRepository[*Ingredient]
	txManager tx.Manager
}

// NewService creates the ingredient service.
func NewService(repo domain.CatalogRepository[*Ingredient], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Ingredient]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "ingredient",
		}),
		repo:      repo,
		txManager: txManager,
	}
}

// AddOrUpdate upserts an ingredient by name.
// An existing record gets the new batch figures and is reactivated
// if it was previously deactivated.
func (s *Service) AddOrUpdate(ctx context.Context, name, unit string, totalPrice types.Money, purchasedQuantity decimal.Decimal) (*Ingredient, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return nil, err
		}
		ing := New(name, unit, totalPrice, purchasedQuantity)
		if err := s.Create(ctx, ing); err != nil {
			return nil, err
		}
		logger.Info(ctx, "ingredient created", "name", name)
		return ing, nil
	}

	existing.Unit = unit
	existing.TotalPrice = totalPrice
	existing.PurchasedQuantity = purchasedQuantity
	existing.Undelete()
	if err := s.Update(ctx, existing); err != nil {
		return nil, err
	}
	logger.Info(ctx, "ingredient updated", "name", name)
	return existing, nil
}

// Deactivate hides an ingredient from active listings.
// Idempotent: deactivating an already inactive ingredient succeeds.
// Recipes referencing it keep resolving its cost.
func (s *Service) Deactivate(ctx context.Context, ingredientID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, ingredientID, true)
	})
}

// ListActive returns only active ingredients, the sole listing consuming
// UIs ever see.
func (s *Service) ListActive(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Ingredient], error) {
	f.IncludeDeleted = false
	return s.List(ctx, f)
}

package catalog_repo

import (
	"confeito/internal/domain"
	"confeito/internal/domain/catalogs/client"
	"confeito/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ domain.CatalogRepository[*client.Client] = (*ClientRepo)(nil)

// ClientRepo persists clients.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

// NewClientRepo creates the client repository.
func NewClientRepo(txManager *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"clients",
			postgres.ExtractDBColumns[client.Client](),
			func() *client.Client { return &client.Client{} },
		),
	}
}

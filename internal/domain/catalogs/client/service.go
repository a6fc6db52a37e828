package client

import (
	"context"
	"sort"
	"time"

	"confeito/internal/core/tx"
	"confeito/internal/domain"
)

// Service provides client catalog operations and the birthday scheduler.
type Service struct {
	*domain.CatalogService[*Client]

	repo domain.CatalogRepository[*Client]
}

// NewService creates the client service.
func NewService(repo domain.CatalogRepository[*Client], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Client]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "client",
		}),
		repo: repo,
	}
}

// Search lists clients whose name contains the given substring.
func (s *Service) Search(ctx context.Context, query string, limit, offset int) (domain.ListResult[*Client], error) {
	f := domain.DefaultListFilter()
	f.Search = query
	if limit > 0 {
		f.Limit = limit
	}
	f.Offset = offset
	return s.List(ctx, f)
}

// Upcoming returns up to n clients ordered by days until their next
// birthday, soonest first. Ties are broken by client id for a
// deterministic order. n <= 0 yields an empty result.
func (s *Service) Upcoming(ctx context.Context, n int) ([]UpcomingBirthday, error) {
	return s.UpcomingAt(ctx, n, time.Now())
}

// UpcomingAt is Upcoming evaluated against an explicit "today".
func (s *Service) UpcomingAt(ctx context.Context, n int, today time.Time) ([]UpcomingBirthday, error) {
	if n <= 0 {
		return []UpcomingBirthday{}, nil
	}

	f := domain.DefaultListFilter()
	f.Limit = 0 // all clients, the scheduler ranks in memory
	res, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	upcoming := make([]UpcomingBirthday, 0, len(res.Items))
	for _, c := range res.Items {
		if c.Birthday.IsZero() {
			continue
		}
		upcoming = append(upcoming, UpcomingBirthday{
			Client:    c,
			Next:      NextOccurrence(c.Birthday, today),
			DaysUntil: DaysUntil(c.Birthday, today),
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].DaysUntil != upcoming[j].DaysUntil {
			return upcoming[i].DaysUntil < upcoming[j].DaysUntil
		}
		return upcoming[i].Client.ID.String() < upcoming[j].Client.ID.String()
	})

	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming, nil
}

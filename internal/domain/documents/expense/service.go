package expense

import (
	"context"
	"fmt"

	"confeito/internal/core/apperror"
	"confeito/internal/core/id"
	"confeito/internal/core/tx"
	"confeito/pkg/logger"
)

// Service provides expense operations.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates the expense service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{repo: repo, txManager: txManager}
}

// Create persists a new expense.
func (s *Service) Create(ctx context.Context, e *Expense) error {
	if err := e.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, e); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "expense created",
		"category", string(e.Category), "amount", e.Amount.String())
	return nil
}

// Get loads an expense by id.
func (s *Service) Get(ctx context.Context, expenseID id.ID) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("expense", expenseID.String())
		}
		return nil, err
	}
	return e, nil
}

// Delete removes an expense. Deleting a nonexistent id is NotFound.
func (s *Service) Delete(ctx context.Context, expenseID id.ID) error {
	if _, err := s.Get(ctx, expenseID); err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, expenseID)
	})
}

// List returns expenses matching the filter.
func (s *Service) List(ctx context.Context, f Filter) (ListResult, error) {
	if f.Category != nil && !f.Category.Valid() {
		return ListResult{}, apperror.NewValidation("unknown expense category").
			WithDetail("value", string(*f.Category))
	}
	return s.repo.List(ctx, f)
}

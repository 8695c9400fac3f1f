// Package ledger owns line item balances. A balance is never decremented in
// place: it is always re-derived as amount minus the sum of approved,
// non-deleted expenditures, under a row lock on the line item.
package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

type lineItemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
	SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type expenditureRepo interface {
	SumApproved(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)
	SumApprovedByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error)
}

type budgetRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

type recorder interface {
	DebitApplied()
	DebitRejected()
	BalanceDrift(entity string)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service is the ledger.
type Service struct {
	lineItems    lineItemRepo
	expenditures expenditureRepo
	budgets      budgetRepo
	metrics      recorder
	tx           txManager
	log          *slog.Logger
}

// NewService creates a new ledger service.
func NewService(
	log *slog.Logger,
	lineItems lineItemRepo,
	expenditures expenditureRepo,
	budgets budgetRepo,
	metrics recorder,
	tx txManager,
) *Service {
	return &Service{
		lineItems:    lineItems,
		expenditures: expenditures,
		budgets:      budgets,
		metrics:      metrics,
		tx:           tx,
		log:          log.With("service", "ledger"),
	}
}

// Allocate sets the amount and initial balance of a line item that has no
// expenditures yet.
func (s *Service) Allocate(li *domain.BudgetLineItem, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.NewValidationError("amount", "must not be negative")
	}
	li.Amount = amount
	li.Balance = amount
	return nil
}

// Reserve checks that the line item's stored balance covers amount. It takes
// no lock and writes nothing; Debit is the authoritative check.
func (s *Service) Reserve(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be positive")
	}

	li, err := s.lineItems.GetByID(ctx, lineItemID)
	if err != nil {
		return err
	}

	if amount.GreaterThan(li.Balance) {
		return &domain.InsufficientBalanceError{
			LineItemID: lineItemID,
			Requested:  amount,
			Available:  li.Balance,
		}
	}
	return nil
}

// Package budget maintains budgets and their line items. Budget.TotalAmount
// is recomputed from live line items inside every transaction that changes them.
package budget

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

type budgetRepo interface {
	Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
	Update(ctx context.Context, id uuid.UUID, params domain.BudgetUpdateParams) (*domain.Budget, error)
	RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	List(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error)
	Summary(ctx context.Context, filter domain.BudgetFilter) ([]domain.BudgetSummaryRow, error)
}

type lineItemRepo interface {
	Create(ctx context.Context, li *domain.BudgetLineItem) (*domain.BudgetLineItem, error)
	CreateBatch(ctx context.Context, items []domain.BudgetLineItem) ([]domain.BudgetLineItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
	Update(ctx context.Context, id uuid.UUID, params domain.LineItemUpdateParams) (*domain.BudgetLineItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type expenditureRepo interface {
	CountNonDraftByBudget(ctx context.Context, budgetID uuid.UUID) (int, error)
	CountLiveByLineItem(ctx context.Context, lineItemID uuid.UUID) (int, error)
}

type ledger interface {
	Allocate(li *domain.BudgetLineItem, amount decimal.Decimal) error
	Recompute(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements budget and line item operations.
type Service struct {
	budgets      budgetRepo
	lineItems    lineItemRepo
	expenditures expenditureRepo
	ledger       ledger
	tx           txManager
	log          *slog.Logger
}

// NewService creates a new budget service.
func NewService(
	log *slog.Logger,
	budgets budgetRepo,
	lineItems lineItemRepo,
	expenditures expenditureRepo,
	ledger ledger,
	tx txManager,
) *Service {
	return &Service{
		budgets:      budgets,
		lineItems:    lineItems,
		expenditures: expenditures,
		ledger:       ledger,
		tx:           tx,
		log:          log.With("service", "budget"),
	}
}

// lockEditable locks a budget and checks that its content may change.
func (s *Service) lockEditable(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	b, err := s.budgets.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.IsEditable() {
		return nil, &domain.InvalidStateError{
			Entity:  domain.EntityTypeBudget,
			ID:      b.ID,
			Current: b.Status,
			Action:  domain.ActionEdit,
		}
	}
	return b, nil
}

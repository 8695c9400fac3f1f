// Package version keeps the append-only revision history of budgets. Exactly
// one version per budget is current; the flip from the old current version to
// the new one happens in the transaction that inserts the new row.
package version

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

type versionRepo interface {
	NextNumber(ctx context.Context, budgetID uuid.UUID) (int, error)
	ClearCurrent(ctx context.Context, budgetID uuid.UUID) error
	Create(ctx context.Context, v *domain.BudgetVersion) (*domain.BudgetVersion, error)
	GetByID(ctx context.Context, budgetID, id uuid.UUID) (*domain.BudgetVersion, error)
	GetCurrent(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetVersion, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetVersion, error)
}

type budgetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	Update(ctx context.Context, id uuid.UUID, params domain.BudgetUpdateParams) (*domain.Budget, error)
	RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

type lineItemRepo interface {
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
	Create(ctx context.Context, li *domain.BudgetLineItem) (*domain.BudgetLineItem, error)
	Update(ctx context.Context, id uuid.UUID, params domain.LineItemUpdateParams) (*domain.BudgetLineItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type expenditureRepo interface {
	CountLiveByLineItem(ctx context.Context, lineItemID uuid.UUID) (int, error)
}

type ledger interface {
	Allocate(li *domain.BudgetLineItem, amount decimal.Decimal) error
	Recompute(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements budget version control.
type Service struct {
	versions     versionRepo
	budgets      budgetRepo
	lineItems    lineItemRepo
	expenditures expenditureRepo
	ledger       ledger
	tx           txManager
	log          *slog.Logger
}

// NewService creates a new version service.
func NewService(
	log *slog.Logger,
	versions versionRepo,
	budgets budgetRepo,
	lineItems lineItemRepo,
	expenditures expenditureRepo,
	ledger ledger,
	tx txManager,
) *Service {
	return &Service{
		versions:     versions,
		budgets:      budgets,
		lineItems:    lineItems,
		expenditures: expenditures,
		ledger:       ledger,
		tx:           tx,
		log:          log.With("service", "version"),
	}
}

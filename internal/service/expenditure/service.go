// Package expenditure records spending against approved budgets and the
// retirements that account for it. Balances are only checked here; the
// authoritative debit happens on approval.
package expenditure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/config"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

type expenditureRepo interface {
	Create(ctx context.Context, e *domain.Expenditure) (*domain.Expenditure, error)
	Update(ctx context.Context, id uuid.UUID, params domain.ExpenditureUpdateParams) (*domain.Expenditure, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error)
	List(ctx context.Context, filter domain.ExpenditureFilter) ([]domain.Expenditure, error)
}

type retirementRepo interface {
	Create(ctx context.Context, ret *domain.ExpenditureRetirement) (*domain.ExpenditureRetirement, error)
	Update(ctx context.Context, id uuid.UUID, amountRetired, balanceUnretired decimal.Decimal, description string) (*domain.ExpenditureRetirement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error)
	GetByExpenditure(ctx context.Context, expenditureID uuid.UUID) (*domain.ExpenditureRetirement, error)
}

type budgetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
}

type lineItemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error)
}

type ledger interface {
	Reserve(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) error
	Recompute(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error)
}

type refCounter interface {
	Next(ctx context.Context, scope domain.ReferenceScope, period domain.ReferencePeriod) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements expenditure and retirement operations.
type Service struct {
	expenditures expenditureRepo
	retirements  retirementRepo
	budgets      budgetRepo
	lineItems    lineItemRepo
	ledger       ledger
	refs         refCounter
	tx           txManager
	log          *slog.Logger
	cfg          config.ReferenceConfig
	now          func() time.Time
}

// NewService creates a new expenditure service.
func NewService(
	log *slog.Logger,
	expenditures expenditureRepo,
	retirements retirementRepo,
	budgets budgetRepo,
	lineItems lineItemRepo,
	ledger ledger,
	refs refCounter,
	tx txManager,
	cfg config.ReferenceConfig,
) *Service {
	return &Service{
		expenditures: expenditures,
		retirements:  retirements,
		budgets:      budgets,
		lineItems:    lineItems,
		ledger:       ledger,
		refs:         refs,
		tx:           tx,
		log:          log.With("service", "expenditure"),
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// nextReference draws the next number of scope for the current month.
func (s *Service) nextReference(ctx context.Context, scope domain.ReferenceScope, prefix string) (string, error) {
	period := domain.PeriodOf(s.now())
	seq, err := s.refs.Next(ctx, scope, period)
	if err != nil {
		return "", fmt.Errorf("next %s reference: %w", scope, err)
	}
	return domain.FormatReference(prefix, period, seq), nil
}

func editError(entity domain.EntityType, id uuid.UUID, status domain.ApprovalStatus) error {
	return &domain.InvalidStateError{Entity: entity, ID: id, Current: status, Action: domain.ActionEdit}
}

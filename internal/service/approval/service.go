// Package approval drives budgets, expenditures and retirements through the
// submit / review / approve / reject workflow. The transition table lives in
// domain.NextStatus; entities differ only in how a transition is persisted and
// in their side effects, supplied through the Approvable interface.
package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

type budgetRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error
}

type versionRepo interface {
	UpdateStatus(ctx context.Context, budgetID uuid.UUID, change domain.StatusChange) error
}

type expenditureRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error
}

type retirementRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error
}

type historyRepo interface {
	Append(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error)
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ApprovalHistory, error)
}

type ledger interface {
	Reserve(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) error
	Debit(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

type notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event domain.NotificationEvent, payload map[string]any) error
}

type recorder interface {
	Transition(entity domain.EntityType, action domain.ApprovalAction)
	Notification(delivered bool)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultNotifyTimeout bounds a post-commit notification.
const DefaultNotifyTimeout = 2 * time.Second

// Deps groups the collaborators of the approval service.
type Deps struct {
	Budgets      budgetRepo
	Versions     versionRepo
	Expenditures expenditureRepo
	Retirements  retirementRepo
	History      historyRepo
	Ledger       ledger
	Notifier     notifier
	Metrics      recorder
	Tx           txManager
}

// Service provides the approval workflow.
type Service struct {
	budgets       budgetRepo
	versions      versionRepo
	expenditures  expenditureRepo
	retirements   retirementRepo
	history       historyRepo
	ledger        ledger
	notifier      notifier
	metrics       recorder
	tx            txManager
	log           *slog.Logger
	notifyTimeout time.Duration
	now           func() time.Time
}

// NewService creates a new approval service. A zero notifyTimeout uses
// DefaultNotifyTimeout.
func NewService(log *slog.Logger, deps Deps, notifyTimeout time.Duration) *Service {
	if notifyTimeout <= 0 {
		notifyTimeout = DefaultNotifyTimeout
	}
	return &Service{
		budgets:       deps.Budgets,
		versions:      deps.Versions,
		expenditures:  deps.Expenditures,
		retirements:   deps.Retirements,
		history:       deps.History,
		ledger:        deps.Ledger,
		notifier:      deps.Notifier,
		metrics:       deps.Metrics,
		tx:            deps.Tx,
		log:           log.With("service", "approval"),
		notifyTimeout: notifyTimeout,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

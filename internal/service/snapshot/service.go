// Package snapshot captures immutable copies of budgets and compares them.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

type snapshotRepo interface {
	Create(ctx context.Context, s *domain.BudgetSnapshot) (*domain.BudgetSnapshot, error)
	ClearBaseline(ctx context.Context, budgetID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetSnapshot, error)
	GetBaseline(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetSnapshot, error)
	ListByBudget(ctx context.Context, budgetID uuid.UUID, typ *domain.SnapshotType) ([]domain.BudgetSnapshot, error)
}

type budgetRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error)
}

type lineItemRepo interface {
	ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements snapshot capture and comparison.
type Service struct {
	snapshots snapshotRepo
	budgets   budgetRepo
	lineItems lineItemRepo
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new snapshot service.
func NewService(
	log *slog.Logger,
	snapshots snapshotRepo,
	budgets budgetRepo,
	lineItems lineItemRepo,
	tx txManager,
) *Service {
	return &Service{
		snapshots: snapshots,
		budgets:   budgets,
		lineItems: lineItems,
		tx:        tx,
		log:       log.With("service", "snapshot"),
	}
}

const maxLabelLength = 255

// CreateSnapshotInput holds the parameters for capturing a snapshot.
// An empty SnapshotType means ad hoc.
type CreateSnapshotInput struct {
	BudgetID     uuid.UUID
	SnapshotType domain.SnapshotType
	IsBaseline   bool
	Label        *string
}

// Validate checks all fields and collects all errors.
func (i *CreateSnapshotInput) Validate() error {
	var errs []domain.FieldError

	if i.BudgetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "budget_id", Message: "required"})
	}
	if i.SnapshotType != "" && !i.SnapshotType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "snapshot_type", Message: "invalid value"})
	}
	if i.Label != nil && len(*i.Label) > maxLabelLength {
		errs = append(errs, domain.FieldError{Field: "label", Message: "too long (max 255)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateSnapshot serializes the budget and its live line items. A baseline
// snapshot replaces the previous baseline of the budget.
func (s *Service) CreateSnapshot(ctx context.Context, input CreateSnapshotInput) (*domain.BudgetSnapshot, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	typ := input.SnapshotType
	if typ == "" {
		typ = domain.SnapshotAdHoc
	}

	var label *string
	if input.Label != nil {
		if l := strings.TrimSpace(*input.Label); l != "" {
			label = &l
		}
	}

	var created *domain.BudgetSnapshot
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The budget row lock serializes baseline flips of one budget.
		b, err := s.budgets.GetForUpdate(txCtx, input.BudgetID)
		if err != nil {
			return err
		}

		items, err := s.lineItems.ListByBudget(txCtx, b.ID)
		if err != nil {
			return fmt.Errorf("list line items: %w", err)
		}

		if input.IsBaseline {
			if err := s.snapshots.ClearBaseline(txCtx, b.ID); err != nil {
				return err
			}
		}

		created, err = s.snapshots.Create(txCtx, &domain.BudgetSnapshot{
			BudgetID:     b.ID,
			SnapshotType: typ,
			IsBaseline:   input.IsBaseline,
			Label:        label,
			Data:         domain.CaptureState(*b, items),
			CreatedBy:    actorID,
		})
		if err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "snapshot created",
		slog.String("budget_id", created.BudgetID.String()),
		slog.String("snapshot_id", created.ID.String()),
		slog.String("type", string(created.SnapshotType)),
		slog.Bool("baseline", created.IsBaseline),
	)
	return created, nil
}

// GetSnapshot returns a snapshot by ID.
func (s *Service) GetSnapshot(ctx context.Context, id uuid.UUID) (*domain.BudgetSnapshot, error) {
	return s.snapshots.GetByID(ctx, id)
}

// ListSnapshots returns the snapshots of a budget, newest first.
func (s *Service) ListSnapshots(ctx context.Context, budgetID uuid.UUID, typ *domain.SnapshotType) ([]domain.BudgetSnapshot, error) {
	if typ != nil && !typ.IsValid() {
		return nil, domain.NewValidationError("snapshot_type", "invalid value")
	}
	if _, err := s.budgets.GetByID(ctx, budgetID); err != nil {
		return nil, err
	}
	return s.snapshots.ListByBudget(ctx, budgetID, typ)
}

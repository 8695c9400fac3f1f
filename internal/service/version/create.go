package version

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

const maxNoteLength = 2000

// CreateVersionInput holds the parameters for recording a new version.
// Fields is free-form metadata describing what changed.
type CreateVersionInput struct {
	BudgetID uuid.UUID
	Note     string
	Fields   map[string]any
}

// Validate checks all fields and collects all errors.
func (i *CreateVersionInput) Validate() error {
	var errs []domain.FieldError

	if i.BudgetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "budget_id", Message: "required"})
	}
	if len(i.Note) > maxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateVersion captures the live budget as its new current version.
func (s *Service) CreateVersion(ctx context.Context, input CreateVersionInput) (*domain.BudgetVersion, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.BudgetVersion
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetForUpdate(txCtx, input.BudgetID)
		if err != nil {
			return err
		}

		created, err = s.appendVersion(txCtx, b, actorID, domain.VersionChanges{
			Note:   strings.TrimSpace(input.Note),
			Fields: input.Fields,
		})
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "version created",
		slog.String("budget_id", created.BudgetID.String()),
		slog.Int("version", created.Version),
		slog.String("actor_id", actorID.String()),
	)
	return created, nil
}

// appendVersion numbers and inserts a current version holding the budget's
// live state. The caller holds the budget row lock.
func (s *Service) appendVersion(
	ctx context.Context,
	b *domain.Budget,
	actorID uuid.UUID,
	changes domain.VersionChanges,
) (*domain.BudgetVersion, error) {
	items, err := s.lineItems.ListByBudget(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	changes.State = domain.CaptureState(*b, items)

	number, err := s.versions.NextNumber(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := s.versions.ClearCurrent(ctx, b.ID); err != nil {
		return nil, err
	}

	created, err := s.versions.Create(ctx, &domain.BudgetVersion{
		BudgetID:  b.ID,
		Version:   number,
		Status:    b.Status,
		IsCurrent: true,
		Changes:   changes,
		CreatedBy: actorID,
	})
	if err != nil {
		return nil, fmt.Errorf("create version: %w", err)
	}
	return created, nil
}

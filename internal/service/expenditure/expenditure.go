package expenditure

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 1. CreateExpenditure
// ---------------------------------------------------------------------------

// CreateExpenditure records a draft expenditure against a line item of an
// approved budget. The line item balance must cover the amount at this point;
// approval checks it again.
func (s *Service) CreateExpenditure(ctx context.Context, input CreateExpenditureInput) (*domain.Expenditure, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Expenditure
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetByID(txCtx, input.BudgetID)
		if err != nil {
			return err
		}
		if b.Status != domain.StatusApproved {
			return domain.NewConflictError(domain.EntityTypeBudget, b.ID,
				fmt.Sprintf("budget is %s, expenditures require an approved budget", b.Status))
		}

		li, err := s.lineItems.GetByID(txCtx, input.LineItemID)
		if err != nil {
			return err
		}
		if li.BudgetID != b.ID {
			return domain.NewValidationError("line_item_id", "does not belong to budget")
		}

		if err := s.ledger.Reserve(txCtx, li.ID, input.Amount); err != nil {
			return err
		}

		ref, err := s.nextReference(txCtx, domain.ReferenceScopeExpenditure, s.cfg.ExpenditurePrefix)
		if err != nil {
			return err
		}

		var payee *string
		if input.Payee != nil {
			if p := strings.TrimSpace(*input.Payee); p != "" {
				payee = &p
			}
		}

		created, err = s.expenditures.Create(txCtx, &domain.Expenditure{
			BudgetID:        b.ID,
			LineItemID:      li.ID,
			ReferenceNumber: ref,
			Amount:          input.Amount,
			Description:     strings.TrimSpace(input.Description),
			Payee:           payee,
			ExpenseDate:     input.ExpenseDate,
			Status:          domain.StatusDraft,
			CreatedBy:       actorID,
		})
		if err != nil {
			return fmt.Errorf("create expenditure: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "expenditure created",
		slog.String("expenditure_id", created.ID.String()),
		slog.String("reference_number", created.ReferenceNumber),
		slog.String("line_item_id", created.LineItemID.String()),
		slog.String("amount", created.Amount.StringFixed(2)),
	)
	return created, nil
}

// ---------------------------------------------------------------------------
// 2. UpdateExpenditure
// ---------------------------------------------------------------------------

// UpdateExpenditure edits a draft or rejected expenditure. A new amount is
// checked against the line item balance.
func (s *Service) UpdateExpenditure(ctx context.Context, input UpdateExpenditureInput) (*domain.Expenditure, error) {
	if _, ok := ctxutil.ActorIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Expenditure
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.expenditures.GetForUpdate(txCtx, input.ExpenditureID)
		if err != nil {
			return err
		}
		if !e.Status.IsEditable() {
			return editError(domain.EntityTypeExpenditure, e.ID, e.Status)
		}

		if input.Amount != nil && !input.Amount.Equal(e.Amount) {
			if err := s.ledger.Reserve(txCtx, e.LineItemID, *input.Amount); err != nil {
				return err
			}
		}

		updated, err = s.expenditures.Update(txCtx, e.ID, input.params())
		if err != nil {
			return fmt.Errorf("update expenditure: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "expenditure updated",
		slog.String("expenditure_id", updated.ID.String()),
	)
	return updated, nil
}

// ---------------------------------------------------------------------------
// 3. DeleteExpenditure
// ---------------------------------------------------------------------------

// DeleteExpenditure soft-deletes an expenditure in any status. Removing an
// approved one gives its amount back to the line item.
func (s *Service) DeleteExpenditure(ctx context.Context, id uuid.UUID) error {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var e *domain.Expenditure
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		e, err = s.expenditures.GetForUpdate(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.expenditures.SoftDelete(txCtx, id); err != nil {
			return fmt.Errorf("delete expenditure: %w", err)
		}

		if e.Status != domain.StatusApproved {
			return nil
		}
		if _, err := s.ledger.Recompute(txCtx, e.LineItemID); err != nil {
			return fmt.Errorf("recompute balance: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "expenditure deleted",
		slog.String("expenditure_id", id.String()),
		slog.String("status", string(e.Status)),
		slog.String("actor_id", actorID.String()),
	)
	return nil
}

// ---------------------------------------------------------------------------
// 4. Queries
// ---------------------------------------------------------------------------

// GetExpenditure returns a live expenditure.
func (s *Service) GetExpenditure(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error) {
	return s.expenditures.GetByID(ctx, id)
}

// ListExpenditures returns live expenditures matching the filter.
func (s *Service) ListExpenditures(ctx context.Context, filter domain.ExpenditureFilter) ([]domain.Expenditure, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.expenditures.List(ctx, filter)
}

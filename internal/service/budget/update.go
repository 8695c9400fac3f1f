package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 2. UpdateBudget
// ---------------------------------------------------------------------------

// UpdateBudget changes scalar fields of a draft or rejected budget.
func (s *Service) UpdateBudget(ctx context.Context, input UpdateBudgetInput) (*domain.Budget, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := input.params()
	if params.IsEmpty() {
		return s.budgets.GetByID(ctx, input.BudgetID)
	}

	var updated *domain.Budget
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.lockEditable(txCtx, input.BudgetID)
		if err != nil {
			return err
		}

		start, end := current.StartDate, current.EndDate
		if params.StartDate != nil {
			start = *params.StartDate
		}
		if params.EndDate != nil {
			end = *params.EndDate
		}
		if !end.After(start) {
			return domain.NewValidationError("end_date", "must be after start_date")
		}

		updated, err = s.budgets.Update(txCtx, input.BudgetID, params)
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "budget updated",
		slog.String("budget_id", updated.ID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return updated, nil
}

// ---------------------------------------------------------------------------
// 3. DeleteBudget
// ---------------------------------------------------------------------------

// DeleteBudget soft-deletes a budget and its line items. A budget with any
// expenditure past draft cannot be deleted.
func (s *Service) DeleteBudget(ctx context.Context, budgetID uuid.UUID) error {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.budgets.GetForUpdate(txCtx, budgetID); err != nil {
			return err
		}

		n, err := s.expenditures.CountNonDraftByBudget(txCtx, budgetID)
		if err != nil {
			return fmt.Errorf("count expenditures: %w", err)
		}
		if n > 0 {
			return domain.NewConflictError(domain.EntityTypeBudget, budgetID,
				fmt.Sprintf("has %d non-draft expenditures", n))
		}

		if err := s.budgets.SoftDelete(txCtx, budgetID); err != nil {
			return fmt.Errorf("delete budget: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "budget deleted",
		slog.String("budget_id", budgetID.String()),
		slog.String("actor_id", actorID.String()),
	)
	return nil
}

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
// 4. AddLineItem
// ---------------------------------------------------------------------------

// AddLineItem adds a line item to a draft or rejected budget.
func (s *Service) AddLineItem(ctx context.Context, budgetID uuid.UUID, input LineItemInput) (*domain.BudgetLineItem, error) {
	if _, ok := ctxutil.ActorIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.BudgetLineItem
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.lockEditable(txCtx, budgetID)
		if err != nil {
			return err
		}

		li := newLineItem(b, input)
		if err := s.ledger.Allocate(&li, input.Amount); err != nil {
			return err
		}

		created, err = s.lineItems.Create(txCtx, &li)
		if err != nil {
			return fmt.Errorf("create line item: %w", err)
		}

		if _, err := s.budgets.RecomputeTotal(txCtx, budgetID); err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "line item added",
		slog.String("budget_id", budgetID.String()),
		slog.String("line_item_id", created.ID.String()),
		slog.String("code", created.Code),
	)
	return created, nil
}

// ---------------------------------------------------------------------------
// 5. UpdateLineItem
// ---------------------------------------------------------------------------

// UpdateLineItem changes a line item of a draft or rejected budget. A new
// amount below the approved spend fails with InsufficientBalanceError.
func (s *Service) UpdateLineItem(ctx context.Context, input UpdateLineItemInput) (*domain.BudgetLineItem, error) {
	if _, ok := ctxutil.ActorIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.BudgetLineItem
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		li, err := s.lineItems.GetByID(txCtx, input.LineItemID)
		if err != nil {
			return err
		}
		if _, err := s.lockEditable(txCtx, li.BudgetID); err != nil {
			return err
		}

		updated, err = s.lineItems.Update(txCtx, li.ID, input.params())
		if err != nil {
			return fmt.Errorf("update line item: %w", err)
		}

		if input.Amount == nil {
			return nil
		}

		updated.Balance, err = s.ledger.Recompute(txCtx, li.ID)
		if err != nil {
			return err
		}
		if _, err := s.budgets.RecomputeTotal(txCtx, li.BudgetID); err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "line item updated",
		slog.String("budget_id", updated.BudgetID.String()),
		slog.String("line_item_id", updated.ID.String()),
	)
	return updated, nil
}

// ---------------------------------------------------------------------------
// 6. RemoveLineItem
// ---------------------------------------------------------------------------

// RemoveLineItem soft-deletes a line item no live expenditure references.
func (s *Service) RemoveLineItem(ctx context.Context, lineItemID uuid.UUID) error {
	if _, ok := ctxutil.ActorIDFromCtx(ctx); !ok {
		return domain.ErrUnauthorized
	}

	var budgetID uuid.UUID
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		li, err := s.lineItems.GetByID(txCtx, lineItemID)
		if err != nil {
			return err
		}
		budgetID = li.BudgetID

		if _, err := s.lockEditable(txCtx, li.BudgetID); err != nil {
			return err
		}

		n, err := s.expenditures.CountLiveByLineItem(txCtx, lineItemID)
		if err != nil {
			return fmt.Errorf("count expenditures: %w", err)
		}
		if n > 0 {
			return domain.NewConflictError(domain.EntityTypeLineItem, lineItemID,
				fmt.Sprintf("referenced by %d expenditures", n))
		}

		if err := s.lineItems.SoftDelete(txCtx, lineItemID); err != nil {
			return fmt.Errorf("delete line item: %w", err)
		}
		if _, err := s.budgets.RecomputeTotal(txCtx, li.BudgetID); err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	s.log.InfoContext(ctx, "line item removed",
		slog.String("budget_id", budgetID.String()),
		slog.String("line_item_id", lineItemID.String()),
	)
	return nil
}

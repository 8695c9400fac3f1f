package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Reconcile recomputes every live line item balance and budget total from
// source rows, one short transaction per row, with at most workers running
// concurrently. Rows that cannot be reconciled are logged and counted in
// Failures; only cancellation of ctx aborts the run.
func (s *Service) Reconcile(ctx context.Context, workers int) (domain.ReconcileReport, error) {
	if workers < 1 {
		workers = 1
	}

	var (
		checked, drifted, failures     atomic.Int64
		budgetsChecked, budgetsDrifted atomic.Int64
	)

	lineItemIDs, err := s.lineItems.ListIDs(ctx)
	if err != nil {
		return domain.ReconcileReport{}, fmt.Errorf("list line items: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range lineItemIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			changed, err := s.reconcileLineItem(gctx, id)
			checked.Add(1)
			switch {
			case isCanceled(err):
				return err
			case err != nil:
				failures.Add(1)
				s.log.WarnContext(gctx, "line item reconcile failed",
					slog.String("line_item_id", id.String()),
					slog.String("error", err.Error()),
				)
			case changed:
				drifted.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ReconcileReport{}, err
	}

	budgetIDs, err := s.budgets.ListIDs(ctx)
	if err != nil {
		return domain.ReconcileReport{}, fmt.Errorf("list budgets: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range budgetIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			changed, err := s.reconcileBudget(gctx, id)
			budgetsChecked.Add(1)
			switch {
			case isCanceled(err):
				return err
			case err != nil:
				failures.Add(1)
				s.log.WarnContext(gctx, "budget reconcile failed",
					slog.String("budget_id", id.String()),
					slog.String("error", err.Error()),
				)
			case changed:
				budgetsDrifted.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ReconcileReport{}, err
	}

	return domain.ReconcileReport{
		LineItemsChecked: int(checked.Load()),
		LineItemsDrifted: int(drifted.Load()),
		BudgetsChecked:   int(budgetsChecked.Load()),
		BudgetsDrifted:   int(budgetsDrifted.Load()),
		Failures:         int(failures.Load()),
	}, nil
}

// reconcileLineItem reports changed only once the corrected balance is committed.
func (s *Service) reconcileLineItem(ctx context.Context, id uuid.UUID) (bool, error) {
	var changed bool
	var stored, derived decimal.Decimal
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		li, spent, err := s.lockAndSum(txCtx, id)
		if err != nil {
			return err
		}

		balance := li.Amount.Sub(spent)
		if balance.IsNegative() {
			return &domain.InsufficientBalanceError{LineItemID: id, Requested: spent, Available: li.Amount}
		}
		if balance.Equal(li.Balance) {
			return nil
		}

		if err := s.lineItems.SetBalance(txCtx, id, balance); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		changed, stored, derived = true, li.Balance, balance
		return nil
	})
	if err != nil || !changed {
		return false, err
	}

	s.metrics.BalanceDrift("line_item")
	s.log.WarnContext(ctx, "line item balance drift corrected",
		slog.String("line_item_id", id.String()),
		slog.String("stored", stored.StringFixed(2)),
		slog.String("derived", derived.StringFixed(2)),
	)
	return true, nil
}

func (s *Service) reconcileBudget(ctx context.Context, id uuid.UUID) (bool, error) {
	var changed bool
	var stored, derived decimal.Decimal
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock budget: %w", err)
		}

		total, err := s.budgets.RecomputeTotal(txCtx, id)
		if err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}

		changed, stored, derived = !total.Equal(b.TotalAmount), b.TotalAmount, total
		return nil
	})
	if err != nil || !changed {
		return false, err
	}

	s.metrics.BalanceDrift("budget")
	s.log.WarnContext(ctx, "budget total drift corrected",
		slog.String("budget_id", id.String()),
		slog.String("stored", stored.StringFixed(2)),
		slog.String("derived", derived.StringFixed(2)),
	)
	return true, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

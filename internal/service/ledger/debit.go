package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Debit recomputes the line item balance after an expenditure of amount was
// marked approved in the surrounding transaction. It fails with
// *domain.InsufficientBalanceError when the recomputed balance is negative;
// the caller's transaction then rolls the approval back.
//
// Debit is idempotent: calling it again with the same set of approved
// expenditures yields the same balance.
func (s *Service) Debit(ctx context.Context, lineItemID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		li, spent, err := s.lockAndSum(txCtx, lineItemID)
		if err != nil {
			return err
		}

		balance = li.Amount.Sub(spent)
		if balance.IsNegative() {
			return &domain.InsufficientBalanceError{
				LineItemID: lineItemID,
				Requested:  amount,
				Available:  balance.Add(amount),
			}
		}

		if err := s.lineItems.SetBalance(txCtx, lineItemID, balance); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInsufficientBalance {
			s.metrics.DebitRejected()
		}
		return decimal.Zero, err
	}

	s.metrics.DebitApplied()
	s.log.InfoContext(ctx, "line item debited",
		slog.String("line_item_id", lineItemID.String()),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", balance.StringFixed(2)),
	)

	return balance, nil
}

// Recompute re-derives and stores a line item balance, e.g. after its amount
// changed or an approved expenditure was deleted. An amount below the approved
// spend fails with *domain.InsufficientBalanceError.
func (s *Service) Recompute(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		li, spent, err := s.lockAndSum(txCtx, lineItemID)
		if err != nil {
			return err
		}

		balance = li.Amount.Sub(spent)
		if balance.IsNegative() {
			return &domain.InsufficientBalanceError{
				LineItemID: lineItemID,
				Requested:  spent,
				Available:  li.Amount,
			}
		}

		if balance.Equal(li.Balance) {
			return nil
		}
		if err := s.lineItems.SetBalance(txCtx, lineItemID, balance); err != nil {
			return fmt.Errorf("set balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// lockAndSum locks the line item row and sums its approved expenditures.
func (s *Service) lockAndSum(ctx context.Context, lineItemID uuid.UUID) (*domain.BudgetLineItem, decimal.Decimal, error) {
	li, err := s.lineItems.GetForUpdate(ctx, lineItemID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("lock line item: %w", err)
	}

	spent, err := s.expenditures.SumApproved(ctx, lineItemID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("sum approved: %w", err)
	}
	return li, spent, nil
}

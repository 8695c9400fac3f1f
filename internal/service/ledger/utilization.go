package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Utilization reports spent against allocated for one line item. Spent is
// summed from approved expenditures, not read from the stored balance.
func (s *Service) Utilization(ctx context.Context, lineItemID uuid.UUID) (domain.Utilization, error) {
	li, err := s.lineItems.GetByID(ctx, lineItemID)
	if err != nil {
		return domain.Utilization{}, err
	}

	spent, err := s.expenditures.SumApproved(ctx, lineItemID)
	if err != nil {
		return domain.Utilization{}, fmt.Errorf("sum approved: %w", err)
	}

	return domain.NewUtilization(lineItemID, li.Amount, spent), nil
}

// BudgetUtilization aggregates utilization over all live line items of a budget.
func (s *Service) BudgetUtilization(ctx context.Context, budgetID uuid.UUID) (domain.Utilization, error) {
	items, err := s.lineItems.ListByBudget(ctx, budgetID)
	if err != nil {
		return domain.Utilization{}, fmt.Errorf("list line items: %w", err)
	}

	allocated := decimal.Zero
	for _, li := range items {
		allocated = allocated.Add(li.Amount)
	}

	spent, err := s.expenditures.SumApprovedByBudget(ctx, budgetID)
	if err != nil {
		return domain.Utilization{}, fmt.Errorf("sum approved: %w", err)
	}

	return domain.NewUtilization(budgetID, allocated, spent), nil
}

package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// GetBudget returns a budget with its live line items ordered by code.
func (s *Service) GetBudget(ctx context.Context, budgetID uuid.UUID) (*BudgetDetails, error) {
	b, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	items, err := s.lineItems.ListByBudget(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}

	return &BudgetDetails{Budget: *b, LineItems: items}, nil
}

// ListBudgets returns live budgets matching the filter.
func (s *Service) ListBudgets(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.budgets.List(ctx, filter)
}

// Summary aggregates budgeted against approved spend per organizational unit
// and fiscal year. Limit and Offset are ignored.
func (s *Service) Summary(ctx context.Context, filter domain.BudgetFilter) ([]domain.BudgetSummaryRow, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	return s.budgets.Summary(ctx, filter)
}

package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// BudgetDetails is a budget with its live line items.
type BudgetDetails struct {
	Budget    domain.Budget
	LineItems []domain.BudgetLineItem
}

// ---------------------------------------------------------------------------
// 1. CreateBudget
// ---------------------------------------------------------------------------

// CreateBudget creates a draft budget and its line items in one transaction.
func (s *Service) CreateBudget(ctx context.Context, input CreateBudgetInput) (*BudgetDetails, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result BudgetDetails
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.budgets.Create(txCtx, &domain.Budget{
			Code:        strings.TrimSpace(input.Code),
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			OrgUnit:     strings.TrimSpace(input.OrgUnit),
			FiscalYear:  input.FiscalYear,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			Status:      domain.StatusDraft,
			CreatedBy:   actorID,
		})
		if err != nil {
			return fmt.Errorf("create budget: %w", err)
		}

		items := make([]domain.BudgetLineItem, 0, len(input.LineItems))
		for _, in := range input.LineItems {
			li := newLineItem(created, in)
			if err := s.ledger.Allocate(&li, in.Amount); err != nil {
				return err
			}
			items = append(items, li)
		}

		result.LineItems, err = s.lineItems.CreateBatch(txCtx, items)
		if err != nil {
			return fmt.Errorf("create line items: %w", err)
		}

		created.TotalAmount, err = s.budgets.RecomputeTotal(txCtx, created.ID)
		if err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}

		result.Budget = *created
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "budget created",
		slog.String("budget_id", result.Budget.ID.String()),
		slog.String("code", result.Budget.Code),
		slog.Int("line_items", len(result.LineItems)),
		slog.String("total_amount", result.Budget.TotalAmount.StringFixed(2)),
	)

	return &result, nil
}

func newLineItem(b *domain.Budget, in LineItemInput) domain.BudgetLineItem {
	return domain.BudgetLineItem{
		BudgetID:    b.ID,
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		FiscalYear:  b.FiscalYear,
	}
}

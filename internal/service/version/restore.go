package version

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// RestoreVersion reapplies the state stored in a version to the live budget
// and records the result as a new current version. History is never rewritten.
//
// Line items are matched by code: missing ones are recreated, extra ones are
// removed and common ones take the stored values. The budget must be editable.
func (s *Service) RestoreVersion(ctx context.Context, budgetID, versionID uuid.UUID) (*domain.BudgetVersion, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var created *domain.BudgetVersion
	var restoredFrom int
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.budgets.GetForUpdate(txCtx, budgetID)
		if err != nil {
			return err
		}
		if !b.Status.IsEditable() {
			return &domain.InvalidStateError{
				Entity:  domain.EntityTypeBudget,
				ID:      b.ID,
				Current: b.Status,
				Action:  domain.ActionEdit,
			}
		}

		target, err := s.versions.GetByID(txCtx, budgetID, versionID)
		if err != nil {
			return err
		}
		if target.IsCurrent {
			return domain.NewConflictError(domain.EntityTypeVersion, versionID, "version is already current")
		}
		restoredFrom = target.Version

		state := target.Changes.State
		b, err = s.budgets.Update(txCtx, budgetID, domain.BudgetUpdateParams{
			Title:       &state.Title,
			Description: descriptionParam(state.Description),
			OrgUnit:     &state.OrgUnit,
			FiscalYear:  &state.FiscalYear,
			StartDate:   &state.StartDate,
			EndDate:     &state.EndDate,
		})
		if err != nil {
			return fmt.Errorf("restore budget fields: %w", err)
		}

		if err := s.syncLineItems(txCtx, b, state.LineItems); err != nil {
			return err
		}

		b.TotalAmount, err = s.budgets.RecomputeTotal(txCtx, budgetID)
		if err != nil {
			return fmt.Errorf("recompute total: %w", err)
		}

		from := target.Version
		created, err = s.appendVersion(txCtx, b, actorID, domain.VersionChanges{
			Note:         fmt.Sprintf("restored from version %d", target.Version),
			RestoredFrom: &from,
		})
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "version restored",
		slog.String("budget_id", budgetID.String()),
		slog.Int("restored_from", restoredFrom),
		slog.Int("version", created.Version),
		slog.String("actor_id", actorID.String()),
	)
	return created, nil
}

// syncLineItems makes the live line items of b match want by code.
func (s *Service) syncLineItems(ctx context.Context, b *domain.Budget, want []domain.LineItemState) error {
	live, err := s.lineItems.ListByBudget(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("list line items: %w", err)
	}

	byCode := make(map[string]domain.BudgetLineItem, len(live))
	for _, li := range live {
		byCode[li.Code] = li
	}

	for _, w := range want {
		current, exists := byCode[w.Code]
		if !exists {
			li := domain.BudgetLineItem{
				BudgetID:    b.ID,
				Code:        w.Code,
				Name:        w.Name,
				Category:    w.Category,
				Description: w.Description,
				FiscalYear:  b.FiscalYear,
			}
			if err := s.ledger.Allocate(&li, w.Amount); err != nil {
				return err
			}
			if _, err := s.lineItems.Create(ctx, &li); err != nil {
				return fmt.Errorf("recreate line item %s: %w", w.Code, err)
			}
			continue
		}
		delete(byCode, w.Code)

		if lineItemMatches(current, w) {
			continue
		}
		amount := w.Amount
		if _, err := s.lineItems.Update(ctx, current.ID, domain.LineItemUpdateParams{
			Name:        &w.Name,
			Category:    &w.Category,
			Description: descriptionParam(w.Description),
			Amount:      &amount,
		}); err != nil {
			return fmt.Errorf("restore line item %s: %w", w.Code, err)
		}
		if _, err := s.ledger.Recompute(ctx, current.ID); err != nil {
			return err
		}
	}

	for _, extra := range byCode {
		if err := s.removeLineItem(ctx, extra); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) removeLineItem(ctx context.Context, li domain.BudgetLineItem) error {
	n, err := s.expenditures.CountLiveByLineItem(ctx, li.ID)
	if err != nil {
		return fmt.Errorf("count expenditures: %w", err)
	}
	if n > 0 {
		return domain.NewConflictError(domain.EntityTypeLineItem, li.ID,
			fmt.Sprintf("line item %s is referenced by %d expenditures and is absent from the restored version", li.Code, n))
	}
	if err := s.lineItems.SoftDelete(ctx, li.ID); err != nil {
		return fmt.Errorf("remove line item %s: %w", li.Code, err)
	}
	return nil
}

func lineItemMatches(li domain.BudgetLineItem, w domain.LineItemState) bool {
	return li.Name == w.Name &&
		li.Category == w.Category &&
		derefString(li.Description) == derefString(w.Description) &&
		li.Amount.Equal(w.Amount)
}

// descriptionParam maps a stored nil description to the empty string, which
// clears the column on update.
func descriptionParam(d *string) *string {
	if d == nil {
		empty := ""
		return &empty
	}
	return d
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

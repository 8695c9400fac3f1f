package expenditure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 5. CreateRetirement
// ---------------------------------------------------------------------------

// CreateRetirement opens the retirement of an approved expenditure. Each
// expenditure has at most one retirement.
func (s *Service) CreateRetirement(ctx context.Context, input CreateRetirementInput) (*domain.ExpenditureRetirement, error) {
	actorID, ok := ctxutil.ActorIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.ExpenditureRetirement
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		e, err := s.expenditures.GetForUpdate(txCtx, input.ExpenditureID)
		if err != nil {
			return err
		}
		if e.Status != domain.StatusApproved {
			return domain.NewConflictError(domain.EntityTypeExpenditure, e.ID,
				fmt.Sprintf("expenditure is %s, only approved expenditures can be retired", e.Status))
		}
		if err := checkRetiredAmount(input.AmountRetired, e.Amount); err != nil {
			return err
		}

		_, err = s.retirements.GetByExpenditure(txCtx, e.ID)
		switch {
		case err == nil:
			return fmt.Errorf("retirement of expenditure %s: %w", e.ID, domain.ErrAlreadyExists)
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("check existing retirement: %w", err)
		}

		number, err := s.nextReference(txCtx, domain.ReferenceScopeRetirement, s.cfg.RetirementPrefix)
		if err != nil {
			return err
		}

		created, err = s.retirements.Create(txCtx, &domain.ExpenditureRetirement{
			ExpenditureID:    e.ID,
			RetirementNumber: number,
			AmountRetired:    input.AmountRetired,
			BalanceUnretired: domain.UnretiredBalance(e.Amount, input.AmountRetired),
			Description:      strings.TrimSpace(input.Description),
			Status:           domain.StatusDraft,
			CreatedBy:        actorID,
		})
		if err != nil {
			return fmt.Errorf("create retirement: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "retirement created",
		slog.String("retirement_id", created.ID.String()),
		slog.String("retirement_number", created.RetirementNumber),
		slog.String("expenditure_id", created.ExpenditureID.String()),
		slog.String("balance_unretired", created.BalanceUnretired.StringFixed(2)),
	)
	return created, nil
}

// ---------------------------------------------------------------------------
// 6. UpdateRetirement
// ---------------------------------------------------------------------------

// UpdateRetirement edits a draft or rejected retirement and recomputes the
// unretired balance.
func (s *Service) UpdateRetirement(ctx context.Context, input UpdateRetirementInput) (*domain.ExpenditureRetirement, error) {
	if _, ok := ctxutil.ActorIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.ExpenditureRetirement
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		ret, err := s.retirements.GetForUpdate(txCtx, input.RetirementID)
		if err != nil {
			return err
		}
		if !ret.Status.IsEditable() {
			return editError(domain.EntityTypeRetirement, ret.ID, ret.Status)
		}

		e, err := s.expenditures.GetByID(txCtx, ret.ExpenditureID)
		if err != nil {
			return fmt.Errorf("load expenditure: %w", err)
		}

		amount := ret.AmountRetired
		if input.AmountRetired != nil {
			amount = *input.AmountRetired
		}
		if err := checkRetiredAmount(amount, e.Amount); err != nil {
			return err
		}

		description := ret.Description
		if input.Description != nil {
			description = strings.TrimSpace(*input.Description)
		}

		updated, err = s.retirements.Update(txCtx, ret.ID, amount, domain.UnretiredBalance(e.Amount, amount), description)
		if err != nil {
			return fmt.Errorf("update retirement: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.InfoContext(ctx, "retirement updated",
		slog.String("retirement_id", updated.ID.String()),
	)
	return updated, nil
}

// GetRetirement returns a retirement by ID.
func (s *Service) GetRetirement(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error) {
	return s.retirements.GetByID(ctx, id)
}

// GetRetirementByExpenditure returns the retirement of an expenditure.
func (s *Service) GetRetirementByExpenditure(ctx context.Context, expenditureID uuid.UUID) (*domain.ExpenditureRetirement, error) {
	return s.retirements.GetByExpenditure(ctx, expenditureID)
}

func checkRetiredAmount(retired, spent decimal.Decimal) error {
	if retired.GreaterThan(spent) {
		return domain.NewValidationError("amount_retired", "exceeds expenditure amount "+spent.StringFixed(2))
	}
	return nil
}

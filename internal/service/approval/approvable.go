package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Approvable is an entity locked for a workflow transition.
type Approvable interface {
	EntityType() domain.EntityType
	EntityID() uuid.UUID
	// Owner is the user notified about transitions.
	Owner() uuid.UUID
	CurrentStatus() domain.ApprovalStatus
	// ApplyTransition persists the new status and its stamps.
	ApplyTransition(ctx context.Context, change domain.StatusChange) error
	// OnSubmitted runs after the entity was moved to submitted.
	OnSubmitted(ctx context.Context) error
	// OnApproved runs after the entity was moved to approved, in the same
	// transaction. An error rolls the approval back.
	OnApproved(ctx context.Context) error
	// Payload describes the entity in notifications.
	Payload() map[string]any
}

// load locks the entity row and wraps it as an Approvable.
func (s *Service) load(ctx context.Context, entityType domain.EntityType, id uuid.UUID) (Approvable, error) {
	switch entityType {
	case domain.EntityTypeBudget:
		b, err := s.budgets.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lock budget: %w", err)
		}
		return &budgetEntity{b: b, budgets: s.budgets, versions: s.versions}, nil
	case domain.EntityTypeExpenditure:
		e, err := s.expenditures.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lock expenditure: %w", err)
		}
		return &expenditureEntity{e: e, expenditures: s.expenditures, ledger: s.ledger}, nil
	case domain.EntityTypeRetirement:
		r, err := s.retirements.GetForUpdate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lock retirement: %w", err)
		}
		return &retirementEntity{r: r, retirements: s.retirements}, nil
	default:
		return nil, domain.NewValidationError("entity_type", fmt.Sprintf("%q is not approvable", entityType))
	}
}

// ---------------------------------------------------------------------------
// Budget
// ---------------------------------------------------------------------------

type budgetEntity struct {
	b        *domain.Budget
	budgets  budgetRepo
	versions versionRepo
}

func (e *budgetEntity) EntityType() domain.EntityType        { return domain.EntityTypeBudget }
func (e *budgetEntity) EntityID() uuid.UUID                  { return e.b.ID }
func (e *budgetEntity) Owner() uuid.UUID                     { return e.b.CreatedBy }
func (e *budgetEntity) CurrentStatus() domain.ApprovalStatus { return e.b.Status }

// ApplyTransition updates the budget and mirrors the status onto its current version.
func (e *budgetEntity) ApplyTransition(ctx context.Context, change domain.StatusChange) error {
	if err := e.budgets.UpdateStatus(ctx, e.b.ID, change); err != nil {
		return fmt.Errorf("update budget status: %w", err)
	}
	if err := e.versions.UpdateStatus(ctx, e.b.ID, change); err != nil {
		return fmt.Errorf("mirror status to current version: %w", err)
	}
	e.b.Status = change.Status
	return nil
}

func (e *budgetEntity) OnSubmitted(context.Context) error { return nil }
func (e *budgetEntity) OnApproved(context.Context) error  { return nil }

func (e *budgetEntity) Payload() map[string]any {
	return map[string]any{
		"code":         e.b.Code,
		"title":        e.b.Title,
		"total_amount": e.b.TotalAmount.StringFixed(2),
	}
}

// ---------------------------------------------------------------------------
// Expenditure
// ---------------------------------------------------------------------------

type expenditureEntity struct {
	e            *domain.Expenditure
	expenditures expenditureRepo
	ledger       ledger
}

func (x *expenditureEntity) EntityType() domain.EntityType        { return domain.EntityTypeExpenditure }
func (x *expenditureEntity) EntityID() uuid.UUID                  { return x.e.ID }
func (x *expenditureEntity) Owner() uuid.UUID                     { return x.e.CreatedBy }
func (x *expenditureEntity) CurrentStatus() domain.ApprovalStatus { return x.e.Status }

func (x *expenditureEntity) ApplyTransition(ctx context.Context, change domain.StatusChange) error {
	if err := x.expenditures.UpdateStatus(ctx, x.e.ID, change); err != nil {
		return fmt.Errorf("update expenditure status: %w", err)
	}
	x.e.Status = change.Status
	return nil
}

// OnSubmitted repeats the early balance check made at creation.
func (x *expenditureEntity) OnSubmitted(ctx context.Context) error {
	return x.ledger.Reserve(ctx, x.e.LineItemID, x.e.Amount)
}

// OnApproved debits the line item. The expenditure is already approved in
// this transaction, so the recomputed balance includes it.
func (x *expenditureEntity) OnApproved(ctx context.Context) error {
	if _, err := x.ledger.Debit(ctx, x.e.LineItemID, x.e.Amount); err != nil {
		return fmt.Errorf("debit line item: %w", err)
	}
	return nil
}

func (x *expenditureEntity) Payload() map[string]any {
	return map[string]any{
		"reference_number": x.e.ReferenceNumber,
		"amount":           x.e.Amount.StringFixed(2),
		"budget_id":        x.e.BudgetID.String(),
		"line_item_id":     x.e.LineItemID.String(),
	}
}

// ---------------------------------------------------------------------------
// Retirement
// ---------------------------------------------------------------------------

type retirementEntity struct {
	r           *domain.ExpenditureRetirement
	retirements retirementRepo
}

func (r *retirementEntity) EntityType() domain.EntityType        { return domain.EntityTypeRetirement }
func (r *retirementEntity) EntityID() uuid.UUID                  { return r.r.ID }
func (r *retirementEntity) Owner() uuid.UUID                     { return r.r.CreatedBy }
func (r *retirementEntity) CurrentStatus() domain.ApprovalStatus { return r.r.Status }

func (r *retirementEntity) ApplyTransition(ctx context.Context, change domain.StatusChange) error {
	if err := r.retirements.UpdateStatus(ctx, r.r.ID, change); err != nil {
		return fmt.Errorf("update retirement status: %w", err)
	}
	r.r.Status = change.Status
	return nil
}

func (r *retirementEntity) OnSubmitted(context.Context) error { return nil }
func (r *retirementEntity) OnApproved(context.Context) error  { return nil }

func (r *retirementEntity) Payload() map[string]any {
	return map[string]any{
		"retirement_number": r.r.RetirementNumber,
		"expenditure_id":    r.r.ExpenditureID.String(),
		"amount_retired":    r.r.AmountRetired.StringFixed(2),
		"balance_unretired": r.r.BalanceUnretired.StringFixed(2),
	}
}

// Package expenditure implements the Expenditure repository using PostgreSQL.
package expenditure

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	table        = "expenditures"
	entityName   = "expenditure"
	defaultLimit = 50
	maxLimit     = 500
)

var columns = []string{
	"id", "budget_id", "line_item_id", "reference_number", "amount", "description",
	"payee", "expense_date", "status", "created_by",
	"submitted_by", "submitted_at", "approved_by", "approved_at",
	"rejected_by", "rejected_at", "rejection_reason",
	"created_at", "updated_at", "deleted_at",
}

type row struct {
	ID              uuid.UUID       `db:"id"`
	BudgetID        uuid.UUID       `db:"budget_id"`
	LineItemID      uuid.UUID       `db:"line_item_id"`
	ReferenceNumber string          `db:"reference_number"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	Payee           *string         `db:"payee"`
	ExpenseDate     time.Time       `db:"expense_date"`
	Status          string          `db:"status"`
	CreatedBy       uuid.UUID       `db:"created_by"`
	SubmittedBy     *uuid.UUID      `db:"submitted_by"`
	SubmittedAt     *time.Time      `db:"submitted_at"`
	ApprovedBy      *uuid.UUID      `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	RejectedBy      *uuid.UUID      `db:"rejected_by"`
	RejectedAt      *time.Time      `db:"rejected_at"`
	RejectionReason *string         `db:"rejection_reason"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	DeletedAt       *time.Time      `db:"deleted_at"`
}

// Repo provides expenditure persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new expenditure repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an expenditure.
func (r *Repo) Create(ctx context.Context, e *domain.Expenditure) (*domain.Expenditure, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	now := time.Now().UTC()

	insert := postgres.Builder.Insert(table).
		Columns("id", "budget_id", "line_item_id", "reference_number", "amount", "description",
			"payee", "expense_date", "status", "created_by", "created_at", "updated_at").
		Values(e.ID, e.BudgetID, e.LineItemID, e.ReferenceNumber, e.Amount, e.Description,
			e.Payee, e.ExpenseDate, string(e.Status), e.CreatedBy, now, now).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, e.ID)
	}
	return toDomain(out), nil
}

// Update applies non-nil params.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.ExpenditureUpdateParams) (*domain.Expenditure, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	update := postgres.Builder.Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	if params.Amount != nil {
		update = update.Set("amount", *params.Amount)
	}
	if params.Description != nil {
		update = update.Set("description", *params.Description)
	}
	if params.Payee != nil {
		if *params.Payee == "" {
			update = update.Set("payee", nil)
		} else {
			update = update.Set("payee", *params.Payee)
		}
	}
	if params.ExpenseDate != nil {
		update = update.Set("expense_date", *params.ExpenseDate)
	}

	var out row
	if err := postgres.Get(ctx, q, &out, update); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out), nil
}

// UpdateStatus persists a workflow transition.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	n, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		SetMap(postgres.StatusColumns(change, false)).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}))
	if err != nil {
		return postgres.MapError(err, entityName, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrNotFound)
	}
	return nil
}

// SoftDelete marks an expenditure deleted.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)
	now := time.Now().UTC()

	n, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}))
	if err != nil {
		return postgres.MapError(err, entityName, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a live expenditure.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a live expenditure and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expenditure, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Expenditure, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "deleted_at": nil})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	var out row
	if err := postgres.Get(ctx, q, &out, query); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out), nil
}

// List returns live expenditures matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ExpenditureFilter) ([]domain.Expenditure, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where := squirrel.Eq{"deleted_at": nil}
	if filter.BudgetID != nil {
		where["budget_id"] = *filter.BudgetID
	}
	if filter.LineItemID != nil {
		where["line_item_id"] = *filter.LineItemID
	}
	if filter.Status != nil {
		where["status"] = string(*filter.Status)
	}

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("expense_date DESC", "created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var rows []row
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list expenditures: %w", err)
	}

	out := make([]domain.Expenditure, len(rows))
	for i, rw := range rows {
		out[i] = *toDomain(rw)
	}
	return out, nil
}

// SumApproved returns the total of approved, live expenditures of a line item.
func (r *Repo) SumApproved(ctx context.Context, lineItemID uuid.UUID) (decimal.Decimal, error) {
	return r.sumApproved(ctx, squirrel.Eq{"line_item_id": lineItemID})
}

// SumApprovedByBudget returns the total of approved, live expenditures of a budget.
func (r *Repo) SumApprovedByBudget(ctx context.Context, budgetID uuid.UUID) (decimal.Decimal, error) {
	return r.sumApproved(ctx, squirrel.Eq{"budget_id": budgetID})
}

func (r *Repo) sumApproved(ctx context.Context, where squirrel.Eq) (decimal.Decimal, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where["status"] = string(domain.StatusApproved)
	where["deleted_at"] = nil

	var sum decimal.Decimal
	query := postgres.Builder.Select("COALESCE(SUM(amount), 0)").From(table).Where(where)
	if err := postgres.Get(ctx, q, &sum, query); err != nil {
		return decimal.Zero, fmt.Errorf("sum approved expenditures: %w", err)
	}
	return sum, nil
}

// CountNonDraftByBudget counts live expenditures of a budget that have left draft.
func (r *Repo) CountNonDraftByBudget(ctx context.Context, budgetID uuid.UUID) (int, error) {
	return r.count(ctx, squirrel.And{
		squirrel.Eq{"budget_id": budgetID, "deleted_at": nil},
		squirrel.NotEq{"status": string(domain.StatusDraft)},
	})
}

// CountLiveByLineItem counts live expenditures referencing a line item.
func (r *Repo) CountLiveByLineItem(ctx context.Context, lineItemID uuid.UUID) (int, error) {
	return r.count(ctx, squirrel.Eq{"line_item_id": lineItemID, "deleted_at": nil})
}

func (r *Repo) count(ctx context.Context, where squirrel.Sqlizer) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var n int
	if err := postgres.Get(ctx, q, &n, postgres.Builder.Select("COUNT(*)").From(table).Where(where)); err != nil {
		return 0, fmt.Errorf("count expenditures: %w", err)
	}
	return n, nil
}

func toDomain(r row) *domain.Expenditure {
	return &domain.Expenditure{
		ID:              r.ID,
		BudgetID:        r.BudgetID,
		LineItemID:      r.LineItemID,
		ReferenceNumber: r.ReferenceNumber,
		Amount:          r.Amount,
		Description:     r.Description,
		Payee:           r.Payee,
		ExpenseDate:     r.ExpenseDate,
		Status:          domain.ApprovalStatus(r.Status),
		CreatedBy:       r.CreatedBy,
		SubmittedBy:     r.SubmittedBy,
		SubmittedAt:     r.SubmittedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedBy:      r.RejectedBy,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		DeletedAt:       r.DeletedAt,
	}
}

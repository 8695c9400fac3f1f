// Package budget implements the Budget repository using PostgreSQL.
package budget

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
	table         = "budgets"
	defaultLimit  = 50
	maxLimit      = 500
	entityName    = "budget"
	approvedSpend = `LEFT JOIN LATERAL (
    SELECT COALESCE(SUM(e.amount), 0) AS spent
    FROM expenditures e
    WHERE e.budget_id = b.id AND e.status = 'approved' AND e.deleted_at IS NULL
) s ON true`
)

var columns = []string{
	"id", "code", "title", "description", "org_unit", "fiscal_year",
	"start_date", "end_date", "status", "total_amount", "created_by",
	"submitted_by", "submitted_at", "approved_by", "approved_at",
	"rejected_by", "rejected_at", "rejection_reason",
	"created_at", "updated_at", "deleted_at",
}

type row struct {
	ID              uuid.UUID       `db:"id"`
	Code            string          `db:"code"`
	Title           string          `db:"title"`
	Description     *string         `db:"description"`
	OrgUnit         string          `db:"org_unit"`
	FiscalYear      int             `db:"fiscal_year"`
	StartDate       time.Time       `db:"start_date"`
	EndDate         time.Time       `db:"end_date"`
	Status          string          `db:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
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

// Repo provides budget persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new budget repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a budget. ID, timestamps and status default when zero.
func (r *Repo) Create(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = domain.StatusDraft
	}
	now := time.Now().UTC()

	insert := postgres.Builder.Insert(table).
		Columns("id", "code", "title", "description", "org_unit", "fiscal_year",
			"start_date", "end_date", "status", "total_amount", "created_by", "created_at", "updated_at").
		Values(b.ID, b.Code, b.Title, b.Description, b.OrgUnit, b.FiscalYear,
			b.StartDate, b.EndDate, string(b.Status), b.TotalAmount, b.CreatedBy, now, now).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, b.ID)
	}
	return toDomain(out), nil
}

// Update applies non-nil params and returns the updated budget.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.BudgetUpdateParams) (*domain.Budget, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	update := postgres.Builder.Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	if params.Title != nil {
		update = update.Set("title", *params.Title)
	}
	if params.Description != nil {
		if *params.Description == "" {
			update = update.Set("description", nil)
		} else {
			update = update.Set("description", *params.Description)
		}
	}
	if params.OrgUnit != nil {
		update = update.Set("org_unit", *params.OrgUnit)
	}
	if params.FiscalYear != nil {
		update = update.Set("fiscal_year", *params.FiscalYear)
	}
	if params.StartDate != nil {
		update = update.Set("start_date", *params.StartDate)
	}
	if params.EndDate != nil {
		update = update.Set("end_date", *params.EndDate)
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

	stmt := postgres.Builder.Update(table).
		SetMap(postgres.StatusColumns(change, false)).
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	n, err := postgres.Exec(ctx, q, stmt)
	if err != nil {
		return postgres.MapError(err, entityName, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrNotFound)
	}
	return nil
}

// RecomputeTotal sets total_amount to the sum of live line item amounts and
// returns the new total.
func (r *Repo) RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	const sql = `
UPDATE budgets b
SET total_amount = COALESCE((
        SELECT SUM(li.amount) FROM budget_line_items li
        WHERE li.budget_id = b.id AND li.deleted_at IS NULL
    ), 0),
    updated_at = now()
WHERE b.id = $1 AND b.deleted_at IS NULL
RETURNING b.total_amount`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, sql, id).Scan(&total); err != nil {
		return decimal.Zero, postgres.MapError(err, entityName, id)
	}
	return total, nil
}

// SoftDelete marks a budget and its line items deleted.
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

	if _, err := postgres.Exec(ctx, q, postgres.Builder.Update("budget_line_items").
		Set("deleted_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"budget_id": id, "deleted_at": nil})); err != nil {
		return fmt.Errorf("soft delete line items of budget %s: %w", id, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a live budget.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a live budget and locks its row until the surrounding
// transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Budget, error) {
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

// List returns live budgets matching the filter, newest fiscal year first.
func (r *Repo) List(ctx context.Context, filter domain.BudgetFilter) ([]domain.Budget, error) {
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

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(applyFilter(squirrel.And{squirrel.Eq{"deleted_at": nil}}, filter, "")).
		OrderBy("fiscal_year DESC", "code ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	var rows []row
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	out := make([]domain.Budget, len(rows))
	for i, rw := range rows {
		out[i] = *toDomain(rw)
	}
	return out, nil
}

type summaryRow struct {
	OrgUnit     string          `db:"org_unit"`
	FiscalYear  int             `db:"fiscal_year"`
	BudgetCount int             `db:"budget_count"`
	Budgeted    decimal.Decimal `db:"budgeted"`
	Spent       decimal.Decimal `db:"spent"`
}

// Summary aggregates budgeted and approved spend per organizational unit and
// fiscal year. Spend is summed from expenditures, never from stored balances.
func (r *Repo) Summary(ctx context.Context, filter domain.BudgetFilter) ([]domain.BudgetSummaryRow, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(
		"b.org_unit",
		"b.fiscal_year",
		"COUNT(*) AS budget_count",
		"COALESCE(SUM(b.total_amount), 0) AS budgeted",
		"COALESCE(SUM(s.spent), 0) AS spent",
	).
		From("budgets b").
		JoinClause(approvedSpend).
		Where(applyFilter(squirrel.And{squirrel.Eq{"b.deleted_at": nil}}, filter, "b.")).
		GroupBy("b.org_unit", "b.fiscal_year").
		OrderBy("b.fiscal_year DESC", "b.org_unit ASC")

	var rows []summaryRow
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("budget summary: %w", err)
	}

	out := make([]domain.BudgetSummaryRow, len(rows))
	for i, rw := range rows {
		out[i] = domain.BudgetSummaryRow{
			OrgUnit:     rw.OrgUnit,
			FiscalYear:  rw.FiscalYear,
			BudgetCount: rw.BudgetCount,
			Budgeted:    rw.Budgeted,
			Spent:       rw.Spent,
		}
	}
	return out, nil
}

// ListIDs returns the IDs of all live budgets.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	query := postgres.Builder.Select("id").From(table).Where(squirrel.Eq{"deleted_at": nil}).OrderBy("id")
	if err := postgres.Select(ctx, q, &ids, query); err != nil {
		return nil, fmt.Errorf("list budget ids: %w", err)
	}
	return ids, nil
}

func applyFilter(where squirrel.And, filter domain.BudgetFilter, prefix string) squirrel.And {
	if filter.OrgUnit != nil {
		where = append(where, squirrel.Eq{prefix + "org_unit": *filter.OrgUnit})
	}
	if filter.FiscalYear != nil {
		where = append(where, squirrel.Eq{prefix + "fiscal_year": *filter.FiscalYear})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{prefix + "status": string(*filter.Status)})
	}
	return where
}

func toDomain(r row) *domain.Budget {
	return &domain.Budget{
		ID:              r.ID,
		Code:            r.Code,
		Title:           r.Title,
		Description:     r.Description,
		OrgUnit:         r.OrgUnit,
		FiscalYear:      r.FiscalYear,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Status:          domain.ApprovalStatus(r.Status),
		TotalAmount:     r.TotalAmount,
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

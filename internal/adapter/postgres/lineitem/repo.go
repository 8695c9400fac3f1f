// Package lineitem implements the BudgetLineItem repository using PostgreSQL.
package lineitem

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	table      = "budget_line_items"
	entityName = "line_item"
)

var columns = []string{
	"id", "budget_id", "code", "name", "category", "description",
	"amount", "balance", "fiscal_year", "created_at", "updated_at", "deleted_at",
}

type row struct {
	ID          uuid.UUID       `db:"id"`
	BudgetID    uuid.UUID       `db:"budget_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Description *string         `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Balance     decimal.Decimal `db:"balance"`
	FiscalYear  int             `db:"fiscal_year"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	DeletedAt   *time.Time      `db:"deleted_at"`
}

// Repo provides line item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new line item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a line item. A zero ID is generated.
func (r *Repo) Create(ctx context.Context, li *domain.BudgetLineItem) (*domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	now := time.Now().UTC()

	insert := postgres.Builder.Insert(table).
		Columns("id", "budget_id", "code", "name", "category", "description",
			"amount", "balance", "fiscal_year", "created_at", "updated_at").
		Values(li.ID, li.BudgetID, li.Code, li.Name, li.Category, li.Description,
			li.Amount, li.Balance, li.FiscalYear, now, now).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, li.ID)
	}
	return toDomain(out), nil
}

// CreateBatch inserts several line items of one budget in a single round trip.
func (r *Repo) CreateBatch(ctx context.Context, items []domain.BudgetLineItem) ([]domain.BudgetLineItem, error) {
	if len(items) == 0 {
		return []domain.BudgetLineItem{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)
	now := time.Now().UTC()

	batch := &pgx.Batch{}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		li := items[i]
		sql, args, err := postgres.Builder.Insert(table).
			Columns("id", "budget_id", "code", "name", "category", "description",
				"amount", "balance", "fiscal_year", "created_at", "updated_at").
			Values(li.ID, li.BudgetID, li.Code, li.Name, li.Category, li.Description,
				li.Amount, li.Balance, li.FiscalYear, now, now).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build line item insert: %w", err)
		}
		batch.Queue(sql, args...)
	}

	br := q.SendBatch(ctx, batch)
	for _, li := range items {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, postgres.MapError(err, entityName, li.ID)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close line item batch: %w", err)
	}

	out := make([]domain.BudgetLineItem, len(items))
	for i, li := range items {
		li.CreatedAt, li.UpdatedAt = now, now
		out[i] = li
	}
	return out, nil
}

// GetByID returns a live line item.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns a live line item and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.BudgetLineItem, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.BudgetLineItem, error) {
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

// ListByBudget returns the live line items of a budget ordered by code.
func (r *Repo) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"budget_id": budgetID, "deleted_at": nil}).
		OrderBy("code ASC")

	var rows []row
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list line items of budget %s: %w", budgetID, err)
	}

	out := make([]domain.BudgetLineItem, len(rows))
	for i, rw := range rows {
		out[i] = *toDomain(rw)
	}
	return out, nil
}

// Update applies non-nil params. Balance is left to the caller; changing the
// amount must be followed by SetBalance.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.LineItemUpdateParams) (*domain.BudgetLineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	update := postgres.Builder.Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	if params.Name != nil {
		update = update.Set("name", *params.Name)
	}
	if params.Category != nil {
		update = update.Set("category", *params.Category)
	}
	if params.Description != nil {
		if *params.Description == "" {
			update = update.Set("description", nil)
		} else {
			update = update.Set("description", *params.Description)
		}
	}
	if params.Amount != nil {
		// Keep balance <= amount valid for the statement; the ledger recomputes it.
		update = update.Set("amount", *params.Amount).
			Set("balance", squirrel.Expr("LEAST(balance, ?)", *params.Amount))
	}

	var out row
	if err := postgres.Get(ctx, q, &out, update); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out), nil
}

// SetBalance stores a recomputed balance.
func (r *Repo) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	n, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		Set("balance", balance).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}))
	if err != nil {
		return postgres.MapError(err, entityName, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrNotFound)
	}
	return nil
}

// SoftDelete marks a line item deleted.
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

// ListIDs returns the IDs of all live line items.
func (r *Repo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var ids []uuid.UUID
	query := postgres.Builder.Select("id").From(table).Where(squirrel.Eq{"deleted_at": nil}).OrderBy("id")
	if err := postgres.Select(ctx, q, &ids, query); err != nil {
		return nil, fmt.Errorf("list line item ids: %w", err)
	}
	return ids, nil
}

func toDomain(r row) *domain.BudgetLineItem {
	return &domain.BudgetLineItem{
		ID:          r.ID,
		BudgetID:    r.BudgetID,
		Code:        r.Code,
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Balance:     r.Balance,
		FiscalYear:  r.FiscalYear,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		DeletedAt:   r.DeletedAt,
	}
}

// Package retirement implements the ExpenditureRetirement repository using PostgreSQL.
package retirement

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
	table      = "expenditure_retirements"
	entityName = "retirement"
)

var columns = []string{
	"id", "expenditure_id", "retirement_number", "amount_retired", "balance_unretired",
	"description", "status", "created_by",
	"submitted_by", "submitted_at", "reviewed_by", "reviewed_at",
	"approved_by", "approved_at", "rejected_by", "rejected_at", "rejection_reason",
	"created_at", "updated_at",
}

type row struct {
	ID               uuid.UUID       `db:"id"`
	ExpenditureID    uuid.UUID       `db:"expenditure_id"`
	RetirementNumber string          `db:"retirement_number"`
	AmountRetired    decimal.Decimal `db:"amount_retired"`
	BalanceUnretired decimal.Decimal `db:"balance_unretired"`
	Description      string          `db:"description"`
	Status           string          `db:"status"`
	CreatedBy        uuid.UUID       `db:"created_by"`
	SubmittedBy      *uuid.UUID      `db:"submitted_by"`
	SubmittedAt      *time.Time      `db:"submitted_at"`
	ReviewedBy       *uuid.UUID      `db:"reviewed_by"`
	ReviewedAt       *time.Time      `db:"reviewed_at"`
	ApprovedBy       *uuid.UUID      `db:"approved_by"`
	ApprovedAt       *time.Time      `db:"approved_at"`
	RejectedBy       *uuid.UUID      `db:"rejected_by"`
	RejectedAt       *time.Time      `db:"rejected_at"`
	RejectionReason  *string         `db:"rejection_reason"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// Repo provides retirement persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new retirement repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a retirement. An expenditure has at most one.
func (r *Repo) Create(ctx context.Context, ret *domain.ExpenditureRetirement) (*domain.ExpenditureRetirement, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	if ret.Status == "" {
		ret.Status = domain.StatusDraft
	}
	now := time.Now().UTC()

	insert := postgres.Builder.Insert(table).
		Columns("id", "expenditure_id", "retirement_number", "amount_retired", "balance_unretired",
			"description", "status", "created_by", "created_at", "updated_at").
		Values(ret.ID, ret.ExpenditureID, ret.RetirementNumber, ret.AmountRetired, ret.BalanceUnretired,
			ret.Description, string(ret.Status), ret.CreatedBy, now, now).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, ret.ID)
	}
	return toDomain(out), nil
}

// Update stores new retired/unretired amounts and description.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, amountRetired, balanceUnretired decimal.Decimal, description string) (*domain.ExpenditureRetirement, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	update := postgres.Builder.Update(table).
		Set("amount_retired", amountRetired).
		Set("balance_unretired", balanceUnretired).
		Set("description", description).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, update); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out), nil
}

// UpdateStatus persists a workflow transition, including review stamps.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, change domain.StatusChange) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	n, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		SetMap(postgres.StatusColumns(change, true)).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return postgres.MapError(err, entityName, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entityName, id, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns a retirement.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error) {
	return r.get(ctx, id, squirrel.Eq{"id": id}, false)
}

// GetForUpdate returns a retirement and locks it until the transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ExpenditureRetirement, error) {
	return r.get(ctx, id, squirrel.Eq{"id": id}, true)
}

// GetByExpenditure returns the retirement of an expenditure.
func (r *Repo) GetByExpenditure(ctx context.Context, expenditureID uuid.UUID) (*domain.ExpenditureRetirement, error) {
	return r.get(ctx, expenditureID, squirrel.Eq{"expenditure_id": expenditureID}, false)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, where squirrel.Eq, lock bool) (*domain.ExpenditureRetirement, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(columns...).From(table).Where(where)
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	var out row
	if err := postgres.Get(ctx, q, &out, query); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out), nil
}

func toDomain(r row) *domain.ExpenditureRetirement {
	return &domain.ExpenditureRetirement{
		ID:               r.ID,
		ExpenditureID:    r.ExpenditureID,
		RetirementNumber: r.RetirementNumber,
		AmountRetired:    r.AmountRetired,
		BalanceUnretired: r.BalanceUnretired,
		Description:      r.Description,
		Status:           domain.ApprovalStatus(r.Status),
		CreatedBy:        r.CreatedBy,
		SubmittedBy:      r.SubmittedBy,
		SubmittedAt:      r.SubmittedAt,
		ReviewedBy:       r.ReviewedBy,
		ReviewedAt:       r.ReviewedAt,
		ApprovedBy:       r.ApprovedBy,
		ApprovedAt:       r.ApprovedAt,
		RejectedBy:       r.RejectedBy,
		RejectedAt:       r.RejectedAt,
		RejectionReason:  r.RejectionReason,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

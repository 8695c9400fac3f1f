// Package version implements the BudgetVersion repository using PostgreSQL.
// Versions are append-only; only the current flag and workflow stamps change.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

const (
	table      = "budget_versions"
	entityName = "budget_version"
)

var columns = []string{
	"id", "budget_id", "version", "status", "is_current", "changes", "created_by",
	"submitted_by", "submitted_at", "approved_by", "approved_at",
	"rejected_by", "rejected_at", "rejection_reason", "created_at",
}

type row struct {
	ID              uuid.UUID  `db:"id"`
	BudgetID        uuid.UUID  `db:"budget_id"`
	Version         int        `db:"version"`
	Status          string     `db:"status"`
	IsCurrent       bool       `db:"is_current"`
	Changes         []byte     `db:"changes"`
	CreatedBy       uuid.UUID  `db:"created_by"`
	SubmittedBy     *uuid.UUID `db:"submitted_by"`
	SubmittedAt     *time.Time `db:"submitted_at"`
	ApprovedBy      *uuid.UUID `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	RejectedBy      *uuid.UUID `db:"rejected_by"`
	RejectedAt      *time.Time `db:"rejected_at"`
	RejectionReason *string    `db:"rejection_reason"`
	CreatedAt       time.Time  `db:"created_at"`
}

// Repo provides version persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new version repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// NextNumber returns max(version)+1 for the budget, or 1 when it has none.
// Callers serialize on the budget row lock.
func (r *Repo) NextNumber(ctx context.Context, budgetID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var next int
	err := postgres.Get(ctx, q, &next, postgres.Builder.
		Select("COALESCE(MAX(version), 0) + 1").
		From(table).
		Where(squirrel.Eq{"budget_id": budgetID}))
	if err != nil {
		return 0, fmt.Errorf("next version number for budget %s: %w", budgetID, err)
	}
	return next, nil
}

// ClearCurrent unsets the current flag of every version of the budget.
func (r *Repo) ClearCurrent(ctx context.Context, budgetID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		Set("is_current", false).
		Where(squirrel.Eq{"budget_id": budgetID, "is_current": true}))
	if err != nil {
		return fmt.Errorf("clear current version of budget %s: %w", budgetID, err)
	}
	return nil
}

// Create inserts a version. Callers clear the previous current version first.
func (r *Repo) Create(ctx context.Context, v *domain.BudgetVersion) (*domain.BudgetVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	changes, err := json.Marshal(v.Changes)
	if err != nil {
		return nil, fmt.Errorf("budget_version marshal changes: %w", err)
	}

	insert := postgres.Builder.Insert(table).
		Columns("id", "budget_id", "version", "status", "is_current", "changes", "created_by", "created_at").
		Values(v.ID, v.BudgetID, v.Version, string(v.Status), v.IsCurrent, changes, v.CreatedBy, time.Now().UTC()).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, v.ID)
	}
	return toDomain(out)
}

// GetByID returns a version of the given budget.
func (r *Repo) GetByID(ctx context.Context, budgetID, id uuid.UUID) (*domain.BudgetVersion, error) {
	return r.getOne(ctx, id, squirrel.Eq{"id": id, "budget_id": budgetID})
}

// GetCurrent returns the current version of a budget.
func (r *Repo) GetCurrent(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetVersion, error) {
	return r.getOne(ctx, budgetID, squirrel.Eq{"budget_id": budgetID, "is_current": true})
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, where squirrel.Eq) (*domain.BudgetVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var out row
	if err := postgres.Get(ctx, q, &out, postgres.Builder.Select(columns...).From(table).Where(where)); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out)
}

// ListByBudget returns all versions of a budget, newest first.
func (r *Repo) ListByBudget(ctx context.Context, budgetID uuid.UUID) ([]domain.BudgetVersion, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"budget_id": budgetID}).
		OrderBy("version DESC")

	var rows []row
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list versions of budget %s: %w", budgetID, err)
	}

	out := make([]domain.BudgetVersion, 0, len(rows))
	for _, rw := range rows {
		v, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

// UpdateStatus mirrors a budget workflow transition onto its current version.
// A budget without versions is not an error.
func (r *Repo) UpdateStatus(ctx context.Context, budgetID uuid.UUID, change domain.StatusChange) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	set := postgres.StatusColumns(change, false)
	delete(set, "updated_at")

	_, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		SetMap(set).
		Where(squirrel.Eq{"budget_id": budgetID, "is_current": true}))
	if err != nil {
		return postgres.MapError(err, entityName, budgetID)
	}
	return nil
}

func toDomain(r row) (*domain.BudgetVersion, error) {
	var changes domain.VersionChanges
	if len(r.Changes) > 0 {
		if err := json.Unmarshal(r.Changes, &changes); err != nil {
			return nil, fmt.Errorf("budget_version %s unmarshal changes: %w", r.ID, err)
		}
	}

	return &domain.BudgetVersion{
		ID:              r.ID,
		BudgetID:        r.BudgetID,
		Version:         r.Version,
		Status:          domain.ApprovalStatus(r.Status),
		IsCurrent:       r.IsCurrent,
		Changes:         changes,
		CreatedBy:       r.CreatedBy,
		SubmittedBy:     r.SubmittedBy,
		SubmittedAt:     r.SubmittedAt,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectedBy:      r.RejectedBy,
		RejectedAt:      r.RejectedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}, nil
}

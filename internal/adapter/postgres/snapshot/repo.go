// Package snapshot implements the BudgetSnapshot repository using PostgreSQL.
package snapshot

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
	table      = "budget_snapshots"
	entityName = "budget_snapshot"
)

var columns = []string{
	"id", "budget_id", "snapshot_type", "is_baseline", "label", "data", "created_by", "created_at",
}

type row struct {
	ID           uuid.UUID `db:"id"`
	BudgetID     uuid.UUID `db:"budget_id"`
	SnapshotType string    `db:"snapshot_type"`
	IsBaseline   bool      `db:"is_baseline"`
	Label        *string   `db:"label"`
	Data         []byte    `db:"data"`
	CreatedBy    uuid.UUID `db:"created_by"`
	CreatedAt    time.Time `db:"created_at"`
}

// Repo provides snapshot persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new snapshot repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a snapshot.
func (r *Repo) Create(ctx context.Context, s *domain.BudgetSnapshot) (*domain.BudgetSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	data, err := json.Marshal(s.Data)
	if err != nil {
		return nil, fmt.Errorf("budget_snapshot marshal data: %w", err)
	}

	insert := postgres.Builder.Insert(table).
		Columns("id", "budget_id", "snapshot_type", "is_baseline", "label", "data", "created_by", "created_at").
		Values(s.ID, s.BudgetID, string(s.SnapshotType), s.IsBaseline, s.Label, data, s.CreatedBy, time.Now().UTC()).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return nil, postgres.MapError(err, entityName, s.ID)
	}
	return toDomain(out)
}

// ClearBaseline unsets the baseline flag on the budget's snapshots.
func (r *Repo) ClearBaseline(ctx context.Context, budgetID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	_, err := postgres.Exec(ctx, q, postgres.Builder.Update(table).
		Set("is_baseline", false).
		Where(squirrel.Eq{"budget_id": budgetID, "is_baseline": true}))
	if err != nil {
		return fmt.Errorf("clear baseline of budget %s: %w", budgetID, err)
	}
	return nil
}

// GetByID returns a snapshot.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetSnapshot, error) {
	return r.getOne(ctx, id, squirrel.Eq{"id": id})
}

// GetBaseline returns the budget's baseline snapshot.
func (r *Repo) GetBaseline(ctx context.Context, budgetID uuid.UUID) (*domain.BudgetSnapshot, error) {
	return r.getOne(ctx, budgetID, squirrel.Eq{"budget_id": budgetID, "is_baseline": true})
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, where squirrel.Eq) (*domain.BudgetSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var out row
	if err := postgres.Get(ctx, q, &out, postgres.Builder.Select(columns...).From(table).Where(where)); err != nil {
		return nil, postgres.MapError(err, entityName, id)
	}
	return toDomain(out)
}

// ListByBudget returns the budget's snapshots, newest first, optionally
// narrowed to one type.
func (r *Repo) ListByBudget(ctx context.Context, budgetID uuid.UUID, typ *domain.SnapshotType) ([]domain.BudgetSnapshot, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := squirrel.Eq{"budget_id": budgetID}
	if typ != nil {
		where["snapshot_type"] = string(*typ)
	}

	var rows []row
	query := postgres.Builder.Select(columns...).From(table).Where(where).OrderBy("created_at DESC", "id")
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list snapshots of budget %s: %w", budgetID, err)
	}

	out := make([]domain.BudgetSnapshot, 0, len(rows))
	for _, rw := range rows {
		s, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func toDomain(r row) (*domain.BudgetSnapshot, error) {
	var data domain.BudgetState
	if err := json.Unmarshal(r.Data, &data); err != nil {
		return nil, fmt.Errorf("budget_snapshot %s unmarshal data: %w", r.ID, err)
	}

	return &domain.BudgetSnapshot{
		ID:           r.ID,
		BudgetID:     r.BudgetID,
		SnapshotType: domain.SnapshotType(r.SnapshotType),
		IsBaseline:   r.IsBaseline,
		Label:        r.Label,
		Data:         data,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
	}, nil
}

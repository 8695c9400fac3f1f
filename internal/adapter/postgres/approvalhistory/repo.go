// Package approvalhistory implements the approval history repository using
// PostgreSQL. Records are append-only.
package approvalhistory

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
	table      = "approval_history"
	entityName = "approval_history"
)

var columns = []string{
	"id", "entity_type", "entity_id", "action", "from_status", "to_status",
	"actor_id", "comments", "metadata", "created_at",
}

type row struct {
	ID         uuid.UUID `db:"id"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	Action     string    `db:"action"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    uuid.UUID `db:"actor_id"`
	Comments   *string   `db:"comments"`
	Metadata   []byte    `db:"metadata"`
	CreatedAt  time.Time `db:"created_at"`
}

// Repo provides approval history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new approval history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Append inserts a history record. created_at is assigned by the database
// clock so records of one transaction stay ordered.
func (r *Repo) Append(ctx context.Context, h domain.ApprovalHistory) (domain.ApprovalHistory, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	metadata := []byte("{}")
	if len(h.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(h.Metadata); err != nil {
			return domain.ApprovalHistory{}, fmt.Errorf("approval_history marshal metadata: %w", err)
		}
	}

	insert := postgres.Builder.Insert(table).
		Columns("id", "entity_type", "entity_id", "action", "from_status", "to_status",
			"actor_id", "comments", "metadata").
		Values(h.ID, string(h.EntityType), h.EntityID, string(h.Action), string(h.FromStatus),
			string(h.ToStatus), h.ActorID, h.Comments, metadata).
		Suffix("RETURNING " + postgres.ColumnList(columns))

	var out row
	if err := postgres.Get(ctx, q, &out, insert); err != nil {
		return domain.ApprovalHistory{}, postgres.MapError(err, entityName, h.ID)
	}
	return toDomain(out)
}

// ListByEntity returns an entity's history in chronological order.
func (r *Repo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID) ([]domain.ApprovalHistory, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query := postgres.Builder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"entity_type": string(entityType), "entity_id": entityID}).
		OrderBy("created_at ASC", "id")

	var rows []row
	if err := postgres.Select(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list approval history of %s %s: %w", entityType, entityID, err)
	}

	out := make([]domain.ApprovalHistory, 0, len(rows))
	for _, rw := range rows {
		h, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

func toDomain(r row) (domain.ApprovalHistory, error) {
	h := domain.ApprovalHistory{
		ID:         r.ID,
		EntityType: domain.EntityType(r.EntityType),
		EntityID:   r.EntityID,
		Action:     domain.ApprovalAction(r.Action),
		FromStatus: domain.ApprovalStatus(r.FromStatus),
		ToStatus:   domain.ApprovalStatus(r.ToStatus),
		ActorID:    r.ActorID,
		Comments:   r.Comments,
		CreatedAt:  r.CreatedAt,
	}

	if len(r.Metadata) > 0 {
		meta := make(map[string]any)
		if err := json.Unmarshal(r.Metadata, &meta); err != nil {
			return domain.ApprovalHistory{}, fmt.Errorf("approval_history %s unmarshal metadata: %w", r.ID, err)
		}
		if len(meta) > 0 {
			h.Metadata = meta
		}
	}

	return h, nil
}

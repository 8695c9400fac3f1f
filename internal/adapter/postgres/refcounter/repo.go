// Package refcounter hands out per-scope, per-month sequence numbers for
// human-readable references.
package refcounter

import (
	"context"
	"fmt"

	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Repo provides reference counters backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reference counter repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Next atomically increments and returns the counter of (scope, period),
// starting at 1. The counter row stays locked until the surrounding
// transaction ends, so numbers are gap-free among committed rows.
func (r *Repo) Next(ctx context.Context, scope domain.ReferenceScope, period domain.ReferencePeriod) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	upsert := postgres.Builder.Insert("reference_counters").
		Columns("scope", "year", "month", "last_value").
		Values(string(scope), period.Year, period.Month, 1).
		Suffix("ON CONFLICT (scope, year, month) DO UPDATE SET last_value = reference_counters.last_value + 1 RETURNING last_value")

	var next int64
	if err := postgres.Get(ctx, q, &next, upsert); err != nil {
		return 0, fmt.Errorf("next %s reference for %04d-%02d: %w", scope, period.Year, period.Month, err)
	}
	return next, nil
}

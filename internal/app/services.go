package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/budget-engine/internal/adapter/metrics"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres/approvalhistory"
	budgetrepo "github.com/heartmarshall/budget-engine/internal/adapter/postgres/budget"
	expenditurerepo "github.com/heartmarshall/budget-engine/internal/adapter/postgres/expenditure"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres/lineitem"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres/refcounter"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres/retirement"
	snapshotrepo "github.com/heartmarshall/budget-engine/internal/adapter/postgres/snapshot"
	versionrepo "github.com/heartmarshall/budget-engine/internal/adapter/postgres/version"
	"github.com/heartmarshall/budget-engine/internal/adapter/redis"
	"github.com/heartmarshall/budget-engine/internal/config"
	"github.com/heartmarshall/budget-engine/internal/service/approval"
	"github.com/heartmarshall/budget-engine/internal/service/budget"
	"github.com/heartmarshall/budget-engine/internal/service/expenditure"
	"github.com/heartmarshall/budget-engine/internal/service/ledger"
	"github.com/heartmarshall/budget-engine/internal/service/snapshot"
	"github.com/heartmarshall/budget-engine/internal/service/version"
)

// Services is the public surface of the engine: every use-case service wired
// over one connection pool.
type Services struct {
	Ledger       *ledger.Service
	Budgets      *budget.Service
	Versions     *version.Service
	Snapshots    *snapshot.Service
	Approvals    *approval.Service
	Expenditures *expenditure.Service
}

// NewServices wires repositories and services. notifier may be nil, in which
// case workflow notifications are skipped.
func NewServices(
	log *slog.Logger,
	pool *pgxpool.Pool,
	notifier *redis.Notifier,
	rec *metrics.Recorder,
	cfg *config.Config,
) *Services {
	txm := postgres.NewTxManager(pool)

	budgets := budgetrepo.New(pool)
	lineItems := lineitem.New(pool)
	versions := versionrepo.New(pool)
	snapshots := snapshotrepo.New(pool)
	expenditures := expenditurerepo.New(pool)
	retirements := retirement.New(pool)
	history := approvalhistory.New(pool)
	refs := refcounter.New(pool)

	led := ledger.NewService(log, lineItems, expenditures, budgets, rec, txm)

	deps := approval.Deps{
		Budgets:      budgets,
		Versions:     versions,
		Expenditures: expenditures,
		Retirements:  retirements,
		History:      history,
		Ledger:       led,
		Metrics:      rec,
		Tx:           txm,
	}
	if notifier != nil {
		deps.Notifier = notifier
	}

	return &Services{
		Ledger:       led,
		Budgets:      budget.NewService(log, budgets, lineItems, expenditures, led, txm),
		Versions:     version.NewService(log, versions, budgets, lineItems, expenditures, led, txm),
		Snapshots:    snapshot.NewService(log, snapshots, budgets, lineItems, txm),
		Approvals:    approval.NewService(log, deps, cfg.Redis.PublishTimeout),
		Expenditures: expenditure.NewService(log, expenditures, retirements, budgets, lineItems, led, refs, txm, cfg.Reference),
	}
}

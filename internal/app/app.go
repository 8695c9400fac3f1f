package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/budget-engine/internal/adapter/metrics"
	"github.com/heartmarshall/budget-engine/internal/adapter/postgres"
	"github.com/heartmarshall/budget-engine/internal/adapter/redis"
	"github.com/heartmarshall/budget-engine/internal/config"
	"github.com/heartmarshall/budget-engine/internal/domain"
	"github.com/heartmarshall/budget-engine/internal/transport/middleware"
	"github.com/heartmarshall/budget-engine/internal/transport/rest"
)

// App owns the process resources: pool, Redis client, metrics registry and
// the wired services.
type App struct {
	Services *Services

	cfg      *config.Config
	log      *slog.Logger
	pool     *pgxpool.Pool
	redis    *goredis.Client
	notifier *redis.Notifier
	registry *prometheus.Registry
	metrics  *metrics.Recorder
}

// New connects to the database (and Redis when enabled) and wires services.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log, pool: pool, registry: prometheus.NewRegistry()}

	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.metrics, err = metrics.New(a.registry)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	if cfg.Redis.Enabled {
		a.redis, err = redis.Open(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.notifier = redis.NewNotifier(a.redis, cfg.Redis)
	}

	a.Services = NewServices(log, pool, a.notifier, a.metrics, cfg)
	return a, nil
}

// Close releases the pool and the Redis client.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	a.pool.Close()
}

// Handler returns the ops HTTP handler with its middleware chain.
func (a *App) Handler() http.Handler {
	var notifications interface {
		Ping(ctx context.Context) error
	}
	if a.notifier != nil {
		notifications = a.notifier
	}

	health := rest.NewHealthHandler(a.pool, notifications, BuildVersion())
	mux := rest.NewRouter(health, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	return middleware.Chain(
		middleware.Recovery(a.log),
		middleware.RequestID(),
		middleware.Logger(a.log),
		middleware.Metrics(a.metrics),
	)(mux)
}

// Serve runs the ops server and, when configured, the periodic ledger
// reconciliation until ctx is cancelled or one of them fails.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("ops server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if a.cfg.Reconcile.Interval > 0 {
		g.Go(func() error {
			a.reconcileLoop(gctx)
			return nil
		})
	}

	return g.Wait()
}

func (a *App) reconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Reconcile.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.Reconcile(ctx); err != nil && ctx.Err() == nil {
				a.log.ErrorContext(ctx, "scheduled reconcile failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Reconcile runs one bounded reconciliation pass over the whole ledger.
func (a *App) Reconcile(ctx context.Context) (domain.ReconcileReport, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Reconcile.Timeout)
	defer cancel()

	start := time.Now()
	r, err := a.Services.Ledger.Reconcile(ctx, a.cfg.Reconcile.Workers)
	if err != nil {
		return r, fmt.Errorf("reconcile: %w", err)
	}

	a.log.InfoContext(ctx, "ledger reconciled",
		slog.Int("line_items_checked", r.LineItemsChecked),
		slog.Int("line_items_drifted", r.LineItemsDrifted),
		slog.Int("budgets_checked", r.BudgetsChecked),
		slog.Int("budgets_drifted", r.BudgetsDrifted),
		slog.Int("failures", r.Failures),
		slog.Duration("duration", time.Since(start)),
	)
	return r, nil
}

// Run is the budgetd entry point: load config, build the App, serve.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting budgetd",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("notifications", cfg.Redis.Enabled),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}

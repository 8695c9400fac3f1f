// Command reconcile recomputes every line item balance and budget total from
// approved expenditures and reports drift. It is meant for cron or manual
// runs after an incident.
//
// Exit codes: 0 = clean, 1 = error, 2 = completed with per-item failures.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/budget-engine/internal/app"
	"github.com/heartmarshall/budget-engine/internal/config"
)

func main() {
	workers := flag.Int("workers", 0, "parallel line items (overrides reconcile.workers)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *workers > 0 {
		cfg.Reconcile.Workers = *workers
	}
	// Notifications are not needed for a ledger pass.
	cfg.Redis.Enabled = false

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	report, err := a.Reconcile(ctx)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}
	if report.Failures > 0 {
		a.Close()
		os.Exit(2)
	}
}

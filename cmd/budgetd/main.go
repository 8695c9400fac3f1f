// Command budgetd hosts the budget engine: it wires the services, serves the
// ops endpoints (/live, /ready, /health, /metrics) and optionally runs
// periodic ledger reconciliation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/budget-engine/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("budgetd stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

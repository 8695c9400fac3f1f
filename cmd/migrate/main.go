// Command migrate applies the embedded goose migrations.
//
// Usage:
//
//	migrate [up|down|status|version]
//
// The database DSN comes from the usual configuration (CONFIG_PATH or
// DATABASE_DSN).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/budget-engine/internal/app"
	"github.com/heartmarshall/budget-engine/internal/config"
	"github.com/heartmarshall/budget-engine/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	if err := run(command, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(command, dsn string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			logger.Info("migration applied", slog.String("source", r.Source.Path), slog.Duration("duration", r.Duration))
		}
	case "down":
		r, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		logger.Info("migration rolled back", slog.String("source", r.Source.Path))
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			logger.Info("migration", slog.Int64("version", s.Source.Version), slog.String("state", string(s.State)))
		}
	case "version":
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		logger.Info("database version", slog.Int64("version", v))
	default:
		return fmt.Errorf("unknown command %q (want up, down, status or version)", command)
	}
	return nil
}

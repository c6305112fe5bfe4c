package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default), up   差分マイグレーションを適用
  fresh           全テーブルを DROP し、全マイグレーションを順番に適用

DATABASE_URL selects the backend: postgres://... or sqlite://path`)
	os.Exit(1)
}

// migrationTarget abstracts the dialect-specific migrate/drop functions.
type migrationTarget struct {
	migrate func(ctx context.Context) (int, error)
	dropAll func(ctx context.Context) error
	close   func()
}

func main() {
	cfg, err := config.Load(".env", "../.env")
	if err != nil {
		logging.Setup("", "")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "up" && cmd != "fresh" {
		usage()
	}

	ctx := context.Background()
	target, err := openTarget(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer target.close()

	if cmd == "fresh" {
		slog.Info("dropping all tables")
		if err := target.dropAll(ctx); err != nil {
			logging.Fatal("drop all failed", "error", err)
		}
		slog.Info("all tables dropped")
	}

	applied, err := target.migrate(ctx)
	if err != nil {
		logging.Fatal("migration failed", "error", err)
	}
	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

func openTarget(ctx context.Context, databaseURL string) (*migrationTarget, error) {
	dialect, dsn, err := repository.ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	if dialect == repository.DialectPostgres {
		pool, err := repository.NewPool(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &migrationTarget{
			migrate: func(ctx context.Context) (int, error) { return repository.MigratePostgres(ctx, pool) },
			dropAll: func(ctx context.Context) error { return repository.DropAllPostgres(ctx, pool) },
			close:   pool.Close,
		}, nil
	}
	db, err := repository.OpenSQLite(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &migrationTarget{
		migrate: func(ctx context.Context) (int, error) { return repository.MigrateSQLite(ctx, db) },
		dropAll: func(ctx context.Context) error { return repository.DropAllSQLite(ctx, db) },
		close:   func() { _ = db.Close() },
	}, nil
}

package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

const (
	postgresMigrations = "migrations/postgres"
	sqliteMigrations   = "migrations/sqlite"
	dropAllFile        = "000_drop_all.sql"
)

// migrator abstracts the handful of statements the migration runner needs so the
// same loop serves both PostgreSQL and SQLite.
type migrator struct {
	dir     string
	ensure  func(ctx context.Context) error
	applied func(ctx context.Context, name string) (bool, error)
	exec    func(ctx context.Context, sql string) error
	record  func(ctx context.Context, name string) error
}

// MigratePostgres applies pending *.up.sql migrations to the pool.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	return postgresMigrator(pool).run(ctx)
}

// MigrateSQLite applies pending *.up.sql migrations to db.
func MigrateSQLite(ctx context.Context, db *sql.DB) (int, error) {
	return sqliteMigrator(db).run(ctx)
}

// DropAllPostgres drops every table created by the migrations.
func DropAllPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	return postgresMigrator(pool).dropAll(ctx)
}

// DropAllSQLite drops every table created by the migrations.
func DropAllSQLite(ctx context.Context, db *sql.DB) error {
	return sqliteMigrator(db).dropAll(ctx)
}

func postgresMigrator(pool *pgxpool.Pool) *migrator {
	return &migrator{
		dir: postgresMigrations,
		ensure: func(ctx context.Context) error {
			_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
				name TEXT PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`)
			return err
		},
		applied: func(ctx context.Context, name string) (bool, error) {
			var exists bool
			err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
			return exists, err
		},
		exec: func(ctx context.Context, sql string) error {
			_, err := pool.Exec(ctx, sql)
			return err
		},
		record: func(ctx context.Context, name string) error {
			_, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name)
			return err
		},
	}
}

func sqliteMigrator(db *sql.DB) *migrator {
	return &migrator{
		dir: sqliteMigrations,
		ensure: func(ctx context.Context) error {
			_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
				name TEXT PRIMARY KEY,
				applied_at INTEGER NOT NULL
			)`)
			return err
		},
		applied: func(ctx context.Context, name string) (bool, error) {
			var exists bool
			err := db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = ?)", name).Scan(&exists)
			return exists, err
		},
		exec: func(ctx context.Context, sql string) error {
			_, err := db.ExecContext(ctx, sql)
			return err
		},
		record: func(ctx context.Context, name string) error {
			_, err := db.ExecContext(ctx,
				"INSERT OR IGNORE INTO schema_migrations (name, applied_at) VALUES (?, ?)",
				name, time.Now().UTC().UnixMilli())
			return err
		},
	}
}

// collectUpFiles returns the sorted *.up.sql file names in dir.
func collectUpFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *migrator) run(ctx context.Context) (int, error) {
	if err := m.ensure(ctx); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	upFiles, err := collectUpFiles(m.dir)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")

		done, err := m.applied(ctx, name)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, path.Join(m.dir, filename))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := m.exec(ctx, string(content)); err != nil {
			return applied, fmt.Errorf("migration %s: %w", name, err)
		}
		if err := m.record(ctx, name); err != nil {
			return applied, fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Debug("migration applied", "migration", name)
	}
	return applied, nil
}

func (m *migrator) dropAll(ctx context.Context) error {
	content, err := fs.ReadFile(migrationFS, path.Join(m.dir, dropAllFile))
	if err != nil {
		return fmt.Errorf("read %s: %w", dropAllFile, err)
	}
	if err := m.exec(ctx, string(content)); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenSQLite opens the SQLite database at dsn and verifies it with a ping.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// Dialect identifies the database backend behind a DATABASE_URL.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDatabaseURL returns the dialect of databaseURL and the DSN to hand to its driver.
//
//	postgres://... postgresql://...  -> PostgreSQL, unchanged
//	sqlite://<path>                  -> SQLite file at <path> with WAL and a busy timeout
//	file:...                         -> SQLite URI, unchanged
func ParseDatabaseURL(databaseURL string) (Dialect, string, error) {
	u := strings.TrimSpace(databaseURL)
	switch {
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return DialectPostgres, u, nil
	case strings.HasPrefix(u, "sqlite://"):
		p := strings.TrimPrefix(u, "sqlite://")
		if p == "" {
			return "", "", fmt.Errorf("sqlite path is required")
		}
		return DialectSQLite, filepath.Clean(p) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	case strings.HasPrefix(u, "file:"):
		return DialectSQLite, u, nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", databaseURL)
	}
}

// Store bundles the repositories of one database connection.
type Store struct {
	Dialect  Dialect
	Contacts ContactRepository
	DB       DB

	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// Open connects to databaseURL, applies pending migrations and returns the Store.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	dialect, dsn, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if _, err := MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return &Store{
			Dialect:  dialect,
			Contacts: NewPgContactRepository(pool),
			DB:       pool,
			pool:     pool,
		}, nil
	default:
		db, err := OpenSQLite(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if _, err := MigrateSQLite(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return &Store{
			Dialect:  dialect,
			Contacts: NewSqliteContactRepository(db),
			DB:       sqlPinger{db: db},
			sqlDB:    db,
		}, nil
	}
}

// Close releases the underlying connection.
func (s *Store) Close() {
	if s == nil {
		return
	}
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sqlDB != nil {
		_ = s.sqlDB.Close()
	}
}

// sqlPinger adapts *sql.DB to the DB interface.
type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

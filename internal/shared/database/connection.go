package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"universe-builder/internal/shared/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	driver string
	logger *slog.Logger
}

type Tx struct {
	*sql.Tx
	driver string
}

// Executor is satisfied by both *DB and *Tx so repositories can run inside or
// outside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Rebind(query string) string
	Driver() string
}

func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger = logger.With("component", "database", "operation", "connect", "driver", cfg.Driver)
	logger.Debug("Initializing database connection")

	if cfg.Driver == "sqlite" {
		logger.Info("Opening database", "path", cfg.Path)
	} else {
		// Log connection details (without password)
		logger.Info("Connecting to database",
			"host", cfg.Host,
			"port", cfg.Port,
			"user", cfg.User,
			"database", cfg.Name,
			"sslmode", cfg.SSLMode,
		)
	}

	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		logger.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// Single writer; in-memory databases are per connection.
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")
	return &DB{DB: sqlDB, driver: cfg.Driver, logger: logger}, nil
}

func (db *DB) Driver() string { return db.driver }

func (db *DB) Rebind(query string) string { return rebind(db.driver, query) }

func (db *DB) BeginTx(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{Tx: tx, driver: db.driver}, nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (tx *Tx) Driver() string { return tx.driver }

func (tx *Tx) Rebind(query string) string { return rebind(tx.driver, query) }

// rebind rewrites postgres-style $N placeholders into SQLite's ?N form.
func rebind(driver, query string) string {
	if driver != "sqlite" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(query[i+1 : j])
			b.WriteString("?" + strconv.Itoa(n))
			i = j - 1
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

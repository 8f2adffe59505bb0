package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationFS embed.FS

func (db *DB) RunMigrations(ctx context.Context) error {
	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := db.getMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to get migration files: %w", err)
	}

	for _, migration := range migrations {
		if err := db.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration, err)
		}
	}

	return nil
}

func (db *DB) createMigrationsTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	_, err := db.ExecContext(ctx, query)
	return err
}

func (db *DB) getMigrationFiles() ([]string, error) {
	var migrations []string
	root := path.Join("migrations", db.driver)

	err := fs.WalkDir(migrationFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(p, ".sql") {
			migrations = append(migrations, p)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(migrations)
	return migrations, nil
}

func (db *DB) runMigration(ctx context.Context, migrationFile string) error {
	migrationName := path.Base(migrationFile)
	logger := db.logger.With("operation", "migrate", "migration", migrationName)

	var exists bool
	err := db.QueryRowContext(ctx,
		db.Rebind("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"),
		migrationName,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		logger.Debug("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(migrationFS, migrationFile)
	if err != nil {
		return err
	}

	logger.Info("Running migration")

	return db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES ($1)"), migrationName)
		return err
	})
}

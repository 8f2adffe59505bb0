package database

import (
	"context"
	"log/slog"
	"testing"

	"universe-builder/internal/shared/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}
	db, err := Connect(context.Background(), cfg, slog.Default())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM stars WHERE universe_id = $1 AND star_id = $12"
	if got := rebind("postgres", q); got != q {
		t.Errorf("postgres rebind changed query: %q", got)
	}
	want := "SELECT * FROM stars WHERE universe_id = ?1 AND star_id = ?12"
	if got := rebind("sqlite", q); got != want {
		t.Errorf("sqlite rebind = %q, want %q", got, want)
	}
	if got := rebind("sqlite", "SELECT '$' || name"); got != "SELECT '$' || name" {
		t.Errorf("bare dollar rewritten: %q", got)
	}
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("first RunMigrations: %v", err)
	}
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}

	var applied int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Errorf("applied migrations = %d, want 1", applied)
	}

	for _, table := range []string{"universes", "stars", "system_objects"} {
		var n int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatal(err)
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO universes (name, seed, radius_ly, scale, max_stars, max_primaries, artifact_rate)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`), "doomed", 1, 50.0, 1.0, 150, 5, 0.02)
		if err != nil {
			return err
		}
		return context.Canceled
	})
	if err != context.Canceled {
		t.Fatalf("WithTx err = %v", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM universes").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("rolled back insert is visible: %d rows", n)
	}
}

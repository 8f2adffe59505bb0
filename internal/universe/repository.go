package universe

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing universe repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

const universeColumns = `id, name, seed, radius_ly, scale, max_stars, max_primaries, artifact_rate,
		star_count, object_count, fingerprint, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row scanner) (*Metadata, error) {
	var m Metadata
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Seed,
		&m.RadiusLY,
		&m.Scale,
		&m.MaxStars,
		&m.MaxPrimaries,
		&m.ArtifactRate,
		&m.StarCount,
		&m.ObjectCount,
		&m.Fingerprint,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateUniverse inserts the universe row and sets m.ID and m.CreatedAt.
func (r *Repository) CreateUniverse(ctx context.Context, tx *database.Tx, m *Metadata) error {
	logger := r.logger.With("component", "universe_repository", "operation", "create_universe", "name", m.Name)

	exec := r.getExecutor(tx)
	query := exec.Rebind(`
		INSERT INTO universes (name, seed, radius_ly, scale, max_stars, max_primaries, artifact_rate,
			star_count, object_count, fingerprint, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`)

	createdAt := time.Now().UTC().Truncate(time.Second)
	err := exec.QueryRowContext(ctx, query,
		m.Name,
		m.Seed,
		m.RadiusLY,
		m.Scale,
		m.MaxStars,
		m.MaxPrimaries,
		m.ArtifactRate,
		m.StarCount,
		m.ObjectCount,
		m.Fingerprint,
		createdAt,
	).Scan(&m.ID)
	if err != nil {
		logger.Error("Failed to create universe", "error", err)
		return fmt.Errorf("failed to create universe: %w", err)
	}
	m.CreatedAt = createdAt

	logger.Debug("Universe created", "universe_id", m.ID)
	return nil
}

func (r *Repository) GetUniverse(ctx context.Context, id int) (*Metadata, error) {
	query := r.db.Rebind(`SELECT ` + universeColumns + ` FROM universes WHERE id = $1`)

	m, err := scanMetadata(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("universe %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get universe", "universe_id", id, "error", err)
		return nil, fmt.Errorf("failed to get universe: %w", err)
	}
	return m, nil
}

// ListUniverses returns every stored universe, newest first.
func (r *Repository) ListUniverses(ctx context.Context) ([]*Metadata, error) {
	query := `SELECT ` + universeColumns + ` FROM universes ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list universes", "error", err)
		return nil, fmt.Errorf("failed to list universes: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	var universes []*Metadata
	for rows.Next() {
		m, err := scanMetadata(rows)
		if err != nil {
			r.logger.Error("Failed to scan universe", "error", err)
			return nil, fmt.Errorf("failed to scan universe: %w", err)
		}
		universes = append(universes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating universes: %w", err)
	}
	return universes, nil
}

// DeleteUniverse removes a universe with its stars and objects. Child rows
// are deleted explicitly since SQLite does not enforce cascades by default.
func (r *Repository) DeleteUniverse(ctx context.Context, id int) error {
	logger := r.logger.With("component", "universe_repository", "operation", "delete_universe", "universe_id", id)

	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, table := range []string{"system_objects", "stars"} {
			if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM `+table+` WHERE universe_id = $1`), id); err != nil {
				logger.Error("Failed to delete universe rows", "table", table, "error", err)
				return fmt.Errorf("failed to delete %s: %w", table, err)
			}
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM universes WHERE id = $1`), id)
		if err != nil {
			logger.Error("Failed to delete universe", "error", err)
			return fmt.Errorf("failed to delete universe: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return errors.NotFoundf("universe %d not found", id)
		}
		return nil
	})
}

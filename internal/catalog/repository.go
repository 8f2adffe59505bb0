package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"universe-builder/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing star repository")

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

// SaveStars inserts the catalog rows of one universe.
func (r *Repository) SaveStars(ctx context.Context, tx *database.Tx, universeID int, stars []StarRecord) error {
	logger := r.logger.With(
		"component", "star_repository",
		"operation", "save_stars",
		"universe_id", universeID,
		"count", len(stars),
	)
	logger.Debug("Saving stars")

	exec := r.getExecutor(tx)
	query := exec.Rebind(`
		INSERT INTO stars (universe_id, star_id, name, dist_ly, grid_x, grid_y, spect)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)

	for _, s := range stars {
		if _, err := exec.ExecContext(ctx, query, universeID, s.ID, s.Name, s.DistanceLY, s.GridX, s.GridY, s.Spect); err != nil {
			logger.Error("Failed to insert star", "star_id", s.ID, "error", err)
			return fmt.Errorf("failed to insert star %d: %w", s.ID, err)
		}
	}

	logger.Debug("Stars saved")
	return nil
}

func (r *Repository) GetStars(ctx context.Context, universeID int) ([]StarRecord, error) {
	logger := r.logger.With("component", "star_repository", "operation", "get_stars", "universe_id", universeID)

	query := r.db.Rebind(`
		SELECT star_id, name, dist_ly, grid_x, grid_y, spect
		FROM stars
		WHERE universe_id = $1
		ORDER BY star_id
	`)

	rows, err := r.db.QueryContext(ctx, query, universeID)
	if err != nil {
		logger.Error("Failed to query stars", "error", err)
		return nil, fmt.Errorf("failed to query stars: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var stars []StarRecord
	for rows.Next() {
		var s StarRecord
		if err := rows.Scan(&s.ID, &s.Name, &s.DistanceLY, &s.GridX, &s.GridY, &s.Spect); err != nil {
			logger.Error("Failed to scan star row", "error", err)
			return nil, fmt.Errorf("failed to scan star: %w", err)
		}
		stars = append(stars, s)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating stars: %w", err)
	}

	logger.Debug("Stars retrieved", "count", len(stars))
	return stars, nil
}

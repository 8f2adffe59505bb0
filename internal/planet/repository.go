package planet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/errors"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

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

type batchRow struct {
	SystemID       int    `json:"system_id"`
	ObjectID       int    `json:"object_id"`
	Name           string `json:"name"`
	Class          string `json:"class"`
	ParentObjectID *int   `json:"parent_object_id"`
	IsMoon         bool   `json:"is_moon"`
	LocalX         int    `json:"local_x"`
	LocalY         int    `json:"local_y"`
	OreRichness    int    `json:"ore_richness"`
	FuelRichness   int    `json:"fuel_richness"`
	Habitability   int    `json:"habitability"`
	Risk           int    `json:"risk"`
	ArtifactFlag   bool   `json:"artifact_flag"`
	ArtifactType   string `json:"artifact_type"`
}

const postgresBatchInsert = `
	INSERT INTO system_objects (universe_id, system_id, object_id, name, class, parent_object_id, is_moon,
		local_x, local_y, ore_richness, fuel_richness, habitability, risk, artifact_flag, artifact_type)
	SELECT
		$1,
		(data->>'system_id')::integer,
		(data->>'object_id')::integer,
		data->>'name',
		data->>'class',
		(data->>'parent_object_id')::integer,
		(data->>'is_moon')::boolean,
		(data->>'local_x')::integer,
		(data->>'local_y')::integer,
		(data->>'ore_richness')::smallint,
		(data->>'fuel_richness')::smallint,
		(data->>'habitability')::smallint,
		(data->>'risk')::smallint,
		(data->>'artifact_flag')::boolean,
		data->>'artifact_type'
	FROM json_array_elements($2::json) AS data`

const sqliteBatchInsert = `
	INSERT INTO system_objects (universe_id, system_id, object_id, name, class, parent_object_id, is_moon,
		local_x, local_y, ore_richness, fuel_richness, habitability, risk, artifact_flag, artifact_type)
	SELECT
		$1,
		json_extract(value, '$.system_id'),
		json_extract(value, '$.object_id'),
		json_extract(value, '$.name'),
		json_extract(value, '$.class'),
		json_extract(value, '$.parent_object_id'),
		json_extract(value, '$.is_moon'),
		json_extract(value, '$.local_x'),
		json_extract(value, '$.local_y'),
		json_extract(value, '$.ore_richness'),
		json_extract(value, '$.fuel_richness'),
		json_extract(value, '$.habitability'),
		json_extract(value, '$.risk'),
		json_extract(value, '$.artifact_flag'),
		json_extract(value, '$.artifact_type')
	FROM json_each($2)`

// CreateObjectsBatch inserts all objects of a universe in one statement.
func (r *Repository) CreateObjectsBatch(ctx context.Context, tx *database.Tx, universeID int, rows []ObjectRow) error {
	if len(rows) == 0 {
		return nil
	}

	exec := r.getExecutor(tx)
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create_objects_batch",
		"universe_id", universeID,
		"count", len(rows),
	)
	logger.Debug("Creating system objects in batch")

	batch := make([]batchRow, len(rows))
	for i, row := range rows {
		o := row.CelestialObject
		batch[i] = batchRow{
			SystemID:       o.SystemID,
			ObjectID:       o.ObjectID,
			Name:           o.Name,
			Class:          string(o.Class),
			ParentObjectID: o.ParentObjectID,
			IsMoon:         o.IsMoon,
			LocalX:         o.LocalX,
			LocalY:         o.LocalY,
			OreRichness:    o.OreRichness,
			FuelRichness:   o.FuelRichness,
			Habitability:   o.Habitability,
			Risk:           o.Risk,
			ArtifactFlag:   row.ArtifactFlag,
			ArtifactType:   row.ArtifactType,
		}
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		logger.Error("Failed to marshal objects to JSON", "error", err)
		return fmt.Errorf("failed to marshal objects: %w", err)
	}

	query := postgresBatchInsert
	if exec.Driver() == "sqlite" {
		query = sqliteBatchInsert
	}

	if _, err := exec.ExecContext(ctx, exec.Rebind(query), universeID, string(payload)); err != nil {
		logger.Error("Failed to batch create objects", "error", err)
		return fmt.Errorf("failed to batch create objects: %w", err)
	}

	logger.Info("System objects batch created", "count", len(rows))
	return nil
}

func (r *Repository) GetObjectsBySystemID(ctx context.Context, universeID, systemID int) ([]ObjectRow, error) {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "get_objects_by_system",
		"universe_id", universeID,
		"system_id", systemID,
	)
	logger.Debug("Getting objects by system ID")

	query := r.db.Rebind(`
		SELECT system_id, object_id, name, class, parent_object_id, is_moon, local_x, local_y,
			ore_richness, fuel_richness, habitability, risk, artifact_flag, artifact_type
		FROM system_objects
		WHERE universe_id = $1 AND system_id = $2
		ORDER BY object_id
	`)

	rows, err := r.db.QueryContext(ctx, query, universeID, systemID)
	if err != nil {
		logger.Error("Failed to query objects", "error", err)
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var objects []ObjectRow
	for rows.Next() {
		var (
			row    ObjectRow
			class  string
			parent sql.NullInt64
		)
		err := rows.Scan(
			&row.SystemID,
			&row.ObjectID,
			&row.Name,
			&class,
			&parent,
			&row.IsMoon,
			&row.LocalX,
			&row.LocalY,
			&row.OreRichness,
			&row.FuelRichness,
			&row.Habitability,
			&row.Risk,
			&row.ArtifactFlag,
			&row.ArtifactType,
		)
		if err != nil {
			logger.Error("Failed to scan object row", "error", err)
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		row.Class = ClassCode(class)
		if !row.Class.Valid() {
			logger.Error("Stored object has unknown class", "object_id", row.ObjectID, "class", class)
			return nil, errors.Dataf("object %d:%d has unknown class %q", row.SystemID, row.ObjectID, class)
		}
		if parent.Valid {
			id := int(parent.Int64)
			row.ParentObjectID = &id
		}
		objects = append(objects, row)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating objects: %w", err)
	}

	logger.Debug("Objects retrieved", "count", len(objects))
	return objects, nil
}

package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"universe-builder/internal/planet"
	"universe-builder/internal/shared/errors"
)

const (
	flagColumn = "artifact_flag"
	typeColumn = "artifact_type"
)

// AugmentCSV copies an objects table from r to w with artifact columns set on
// every row. Other columns pass through untouched; the artifact columns are
// appended when the input lacks them.
func (t *Tagger) AugmentCSV(r io.Reader, w io.Writer, logger *slog.Logger) (Stats, error) {
	logger = logger.With("component", "artifact_tagger", "operation", "augment_csv")
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return stats, errors.Config("input system_objects.csv has no header row")
	}
	if err != nil {
		return stats, errors.WrapConfig("failed to read objects header", err)
	}

	header = slices.Clone(header)
	if !slices.Contains(header, flagColumn) {
		header = append(header, flagColumn)
	}
	if !slices.Contains(header, typeColumn) {
		header = append(header, typeColumn)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	field := func(row []string, col string) string {
		if i, ok := index[col]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return stats, fmt.Errorf("failed to write objects header: %w", err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, errors.WrapData("failed to read objects row", err)
		}

		out := make([]string, len(header))
		copy(out, row)

		class := field(row, "class")
		tag := t.TagFields(field(row, "system_id"), field(row, "object_id"), class)
		stats.add(class, tag)

		out[index[flagColumn]] = "0"
		out[index[typeColumn]] = ""
		if tag.Flag {
			out[index[flagColumn]] = "1"
			out[index[typeColumn]] = string(tag.Type)
		}

		if err := cw.Write(out); err != nil {
			return stats, fmt.Errorf("failed to write objects row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return stats, fmt.Errorf("failed to flush objects: %w", err)
	}

	logger.Info("Artifacts tagged", "objects", stats.Objects, "eligible", stats.Eligible, "flagged", stats.Flagged)
	return stats, nil
}

// WriteCSV writes tagged objects in the same layout AugmentCSV produces for
// a freshly generated objects table.
func WriteCSV(w io.Writer, rows []planet.ObjectRow) error {
	cw := csv.NewWriter(w)
	header := append(slices.Clone(planet.Columns), flagColumn, typeColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write objects header: %w", err)
	}
	for _, row := range rows {
		flag := "0"
		if row.ArtifactFlag {
			flag = "1"
		}
		if err := cw.Write(append(row.Record(), flag, row.ArtifactType)); err != nil {
			return fmt.Errorf("failed to write object %d:%d: %w", row.SystemID, row.ObjectID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush objects: %w", err)
	}
	return nil
}

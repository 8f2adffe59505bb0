package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"universe-builder/internal/shared/errors"
)

var catalogColumns = []string{"id", "proper", "dist_ly", "grid_x", "grid_y", "spect"}

// requiredColumns are the only catalog columns downstream stages depend on.
var requiredColumns = []string{"id", "proper", "spect"}

// WriteCSV writes the catalog table in id order.
func WriteCSV(w io.Writer, stars []StarRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(catalogColumns); err != nil {
		return fmt.Errorf("failed to write catalog header: %w", err)
	}
	for _, s := range stars {
		row := []string{
			strconv.Itoa(s.ID),
			s.Name,
			FormatDistance(s.DistanceLY),
			strconv.Itoa(s.GridX),
			strconv.Itoa(s.GridY),
			s.Spect,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write catalog row %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush catalog: %w", err)
	}
	return nil
}

// FormatDistance prints the shortest exact decimal, always with a fractional
// part so whole values read as floats ("0.0", "12.0").
func FormatDistance(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ReadCSV reads a catalog table. Only id, proper and spect are required;
// rows whose id is not an integer are skipped, and an empty name becomes
// "System <id>".
func ReadCSV(r io.Reader, logger *slog.Logger) ([]StarRecord, error) {
	logger = logger.With("component", "catalog_reader", "operation", "read_csv")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	fields, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Config("input star CSV has no header row")
	}
	if err != nil {
		return nil, errors.WrapConfig("failed to read star catalog header", err)
	}

	h := newHeader(fields)
	var missing []string
	for _, col := range requiredColumns {
		if !h.has([]string{col}) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Configf("input star CSV missing required columns: %s", strings.Join(missing, ", "))
	}

	var stars []StarRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, errors.WrapConfig("failed to read star catalog", err)
		}

		id, err := strconv.Atoi(h.get(row, []string{"id"}))
		if err != nil {
			skipped++
			continue
		}

		star := StarRecord{
			ID:    id,
			Name:  h.get(row, []string{"proper"}),
			Spect: h.get(row, []string{"spect"}),
		}
		if star.Name == "" {
			star.Name = fmt.Sprintf("System %d", id)
		}
		if d, err := strconv.ParseFloat(h.get(row, []string{"dist_ly"}), 64); err == nil {
			star.DistanceLY = d
		}
		if x, err := strconv.Atoi(h.get(row, []string{"grid_x"})); err == nil {
			star.GridX = x
		}
		if y, err := strconv.Atoi(h.get(row, []string{"grid_y"})); err == nil {
			star.GridY = y
		}
		stars = append(stars, star)
	}

	if len(stars) == 0 {
		logger.Error("No systems in star catalog", "skipped", skipped)
		return nil, errors.Config("loaded 0 systems; check that the input is a star catalog CSV")
	}

	logger.Debug("Star catalog read", "systems", len(stars), "skipped", skipped)
	return stars, nil
}

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"universe-builder/internal/shared/errors"
)

// Column aliases used by the different HYG releases, most common first.
var (
	aliasID     = []string{"id", "ID"}
	aliasHIP    = []string{"hip", "HIP"}
	aliasProper = []string{"proper", "ProperName", "name"}
	aliasRA     = []string{"ra", "RA"}
	aliasDec    = []string{"dec", "Dec"}
	aliasDist   = []string{"dist", "Distance", "dist_pc"}
	aliasX      = []string{"x", "X"}
	aliasY      = []string{"y", "Y"}
	aliasZ      = []string{"z", "Z"}
	aliasSpect  = []string{"spect", "SpectralType"}
	aliasMag    = []string{"mag", "Mag"}
	aliasLum    = []string{"lum", "Lum"}
	aliasAbsMag = []string{"absmag", "AbsMag"}
)

type header map[string]int

func newHeader(fields []string) header {
	h := make(header, len(fields))
	for i, f := range fields {
		if i == 0 {
			f = strings.TrimPrefix(f, "\ufeff")
		}
		f = strings.TrimSpace(f)
		if _, dup := h[f]; !dup {
			h[f] = i
		}
	}
	return h
}

func (h header) has(aliases []string) bool {
	for _, a := range aliases {
		if _, ok := h[a]; ok {
			return true
		}
	}
	return false
}

// get returns the first non-empty value among the aliases.
func (h header) get(row []string, aliases []string) string {
	for _, a := range aliases {
		i, ok := h[a]
		if !ok || i >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[i]); v != "" {
			return v
		}
	}
	return ""
}

// LoadStats summarizes a load.
type LoadStats struct {
	Loaded  int
	Skipped int
}

// LoadCSV reads a HYG-style star table. Rows without a usable distance or
// position, or with unparseable numbers, are dropped and counted; a missing
// header, missing distance/position columns or an empty result is fatal.
func LoadCSV(r io.Reader, logger *slog.Logger) ([]RawStar, LoadStats, error) {
	logger = logger.With("component", "catalog_loader", "operation", "load_csv")
	var stats LoadStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	fields, err := reader.Read()
	if err == io.EOF {
		return nil, stats, errors.Config("input star CSV has no header row")
	}
	if err != nil {
		return nil, stats, errors.WrapConfig("failed to read input star CSV header", err)
	}

	h := newHeader(fields)
	hasPosition := h.has(aliasX) && h.has(aliasY) && h.has(aliasZ)
	if !h.has(aliasDist) && !hasPosition {
		return nil, stats, errors.Config("input star CSV has neither a distance column (dist, Distance, dist_pc) nor x/y/z columns")
	}

	var stars []RawStar
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				logger.Debug("Skipping malformed row", "line", line, "error", err)
				continue
			}
			return nil, stats, errors.WrapConfig("failed to read input star CSV", err)
		}

		star, err := parseRow(h, row)
		if err != nil {
			stats.Skipped++
			logger.Debug("Skipping row", "line", line, "error", err)
			continue
		}
		stars = append(stars, star)
	}

	stats.Loaded = len(stars)
	if len(stars) == 0 {
		return nil, stats, errors.Config("loaded 0 stars; check that the input is a valid HYG CSV file")
	}

	logger.Info("Star catalog loaded", "loaded", stats.Loaded, "skipped", stats.Skipped)
	return stars, stats, nil
}

func parseRow(h header, row []string) (RawStar, error) {
	xs, ys, zs := h.get(row, aliasX), h.get(row, aliasY), h.get(row, aliasZ)
	havePos := xs != "" && ys != "" && zs != ""

	var xPC, yPC, zPC, distPC float64
	if havePos {
		var err error
		if xPC, err = parseFloat("x", xs); err != nil {
			return RawStar{}, err
		}
		if yPC, err = parseFloat("y", ys); err != nil {
			return RawStar{}, err
		}
		if zPC, err = parseFloat("z", zs); err != nil {
			return RawStar{}, err
		}
	}

	if ds := h.get(row, aliasDist); ds != "" {
		var err error
		if distPC, err = parseFloat("dist", ds); err != nil {
			return RawStar{}, err
		}
	} else if havePos {
		distPC = math.Sqrt(xPC*xPC + yPC*yPC + zPC*zPC)
	} else {
		return RawStar{}, errors.Data("row has neither distance nor position")
	}

	if !havePos {
		// Without coordinates the star sits on the +x axis at its distance.
		xPC, yPC, zPC = distPC, 0, 0
	}

	return RawStar{
		CatalogID: h.get(row, aliasID),
		HIP:       h.get(row, aliasHIP),
		Proper:    h.get(row, aliasProper),
		RA:        h.get(row, aliasRA),
		Dec:       h.get(row, aliasDec),
		DistPC:    distPC,
		DistLY:    distPC * PCToLY,
		XLY:       xPC * PCToLY,
		YLY:       yPC * PCToLY,
		ZLY:       zPC * PCToLY,
		Spect:     h.get(row, aliasSpect),
		Mag:       h.get(row, aliasMag),
		Lum:       h.get(row, aliasLum),
		AbsMag:    h.get(row, aliasAbsMag),
	}, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.WrapData(fmt.Sprintf("unparseable %s %q", field, value), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Data(fmt.Sprintf("non-finite %s %q", field, value))
	}
	return f, nil
}

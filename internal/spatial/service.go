package spatial

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/errors"
)

// MaxRadius bounds neighbor searches to the grid diagonal.
const MaxRadius = catalog.GridSize * 1.5

type Service struct {
	source CatalogSource
	logger *slog.Logger
}

func NewService(source CatalogSource, logger *slog.Logger) *Service {
	logger.Debug("Initializing spatial service")

	return &Service{
		source: source,
		logger: logger,
	}
}

// Neighbors returns the stars within radius cells of star id, nearest
// first. The star itself is not included.
func (s *Service) Neighbors(ctx context.Context, id int, radius float64) ([]Neighbor, error) {
	logger := s.logger.With("component", "spatial_service", "operation", "neighbors", "star_id", id, "radius", radius)

	if radius <= 0 || radius > MaxRadius {
		return nil, errors.Validation("radius must be positive and no larger than the grid diagonal")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, scale, err := s.source.CurrentCatalog()
	if err != nil {
		return nil, err
	}
	origin, ok := cat.Star(id)
	if !ok {
		return nil, errors.NotFoundf("star not found with id: %d", id)
	}

	neighbors := NeighborsOf(cat.Stars, origin, radius, scale)
	logger.Debug("Neighbors found", "count", len(neighbors))
	return neighbors, nil
}

// NeighborsOf is the search behind Neighbors, over an explicit star list.
// Ties in distance are broken by star id.
func NeighborsOf(stars []catalog.StarRecord, origin catalog.StarRecord, radius, scale float64) []Neighbor {
	var out []Neighbor
	for _, st := range stars {
		if st.ID == origin.ID {
			continue
		}
		d := math.Hypot(float64(st.GridX-origin.GridX), float64(st.GridY-origin.GridY))
		if d <= radius {
			out = append(out, Neighbor{Star: st, GridDistance: d, MapDistanceLY: d * scale})
		}
	}
	slices.SortFunc(out, func(a, b Neighbor) int {
		return cmp.Or(cmp.Compare(a.GridDistance, b.GridDistance), cmp.Compare(a.Star.ID, b.Star.ID))
	})
	return out
}

// InRegion returns the stars inside a rectangle of cells, ordered by id.
func (s *Service) InRegion(ctx context.Context, region Region) ([]catalog.StarRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat, _, err := s.source.CurrentCatalog()
	if err != nil {
		return nil, err
	}

	region = region.normalize()
	var out []catalog.StarRecord
	for _, st := range cat.Stars {
		if region.contains(st.GridX, st.GridY) {
			out = append(out, st)
		}
	}
	return out, nil
}

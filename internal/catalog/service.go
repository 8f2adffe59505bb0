package catalog

import (
	"context"
	"io"
	"log/slog"

	"universe-builder/internal/shared/errors"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	logger.Debug("Initializing catalog service")

	return &Service{logger: logger}
}

func (p Params) Validate() error {
	if p.Scale <= 0 {
		return errors.Configf("scale must be > 0, got %v", p.Scale)
	}
	if p.RadiusLY <= 0 {
		return errors.Configf("radius_ly must be > 0, got %v", p.RadiusLY)
	}
	if p.MaxStars <= 0 {
		return errors.Configf("max_stars must be > 0, got %d", p.MaxStars)
	}
	return nil
}

// BuildFromCSV loads a raw star table and builds the catalog from it.
func (s *Service) BuildFromCSV(ctx context.Context, r io.Reader, params Params) (*Catalog, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	stars, stats, err := LoadCSV(r, s.logger)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx, stars, stats, params)
}

// Build runs selection, projection, collision resolution and naming over
// already loaded stars.
func (s *Service) Build(ctx context.Context, stars []RawStar, stats LoadStats, params Params) (*Catalog, error) {
	logger := s.logger.With(
		"component", "catalog_service",
		"operation", "build",
		"radius_ly", params.RadiusLY,
		"max_stars", params.MaxStars,
		"scale", params.Scale,
	)

	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := Report{Loaded: len(stars), SkippedRows: stats.Skipped}

	logger.Debug("Selecting stars within radius")
	selected := Select(stars, params.RadiusLY, params.MaxStars)
	if len(selected) == 0 {
		return nil, errors.Empty("no stars found within the specified radius")
	}
	report.WithinRadius = countWithin(stars, params.RadiusLY)
	report.Selected = len(selected)

	logger.Debug("Projecting to grid", "stars", len(selected))
	placed, offMap := Project(selected, params.Scale)
	report.PrunedOffMap = offMap
	if offMap > 0 {
		logger.Warn("Pruned stars projected outside the grid", "count", offMap)
	}

	survivors, collisions := ResolveCollisions(placed)
	report.PrunedCollision = collisions
	if collisions > 0 {
		logger.Warn("Pruned stars due to grid cell collisions", "count", collisions)
	}
	if len(survivors) == 0 {
		return nil, errors.Empty("all stars were pruned during projection; radius_ly and scale leave nothing on the map")
	}

	records := Finalize(survivors)
	report.Survivors = len(records)

	logger.Info("Star catalog built",
		"loaded", report.Loaded,
		"selected", report.Selected,
		"survivors", report.Survivors,
	)

	return &Catalog{
		Stars:  records,
		Map:    RenderMap(records, params.Scale, params.RadiusLY),
		Report: report,
	}, nil
}

func countWithin(stars []RawStar, radiusLY float64) int {
	n := 0
	for _, s := range stars {
		if s.DistLY <= radiusLY {
			n++
		}
	}
	return n
}

package planet

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/errors"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo    *Repository
	workers int
	logger  *slog.Logger
}

// NewService returns a generator running up to workers systems at once.
// repo may be nil when nothing is persisted.
func NewService(repo *Repository, workers int, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Service{
		repo:    repo,
		workers: workers,
		logger:  logger,
	}
}

func (p Params) Validate() error {
	if p.MaxPrimaries < 0 {
		return errors.Configf("max_primaries must be >= 0, got %d", p.MaxPrimaries)
	}
	return nil
}

// GenerateAll generates every system of the catalog. Systems are independent
// and run concurrently; the result is ordered by system id, then object id.
func (s *Service) GenerateAll(ctx context.Context, stars []catalog.StarRecord, params Params) ([]CelestialObject, error) {
	logger := s.logger.With(
		"component", "planet_service",
		"operation", "generate_all",
		"systems", len(stars),
		"global_seed", params.GlobalSeed,
		"max_primaries", params.MaxPrimaries,
	)
	logger.Debug("Generating system objects", "workers", s.workers)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	results := make([][]CelestialObject, len(stars))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, star := range stars {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Generate(star, params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("System generation interrupted", "error", err)
		return nil, fmt.Errorf("failed to generate system objects: %w", err)
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	objects := make([]CelestialObject, 0, total)
	for _, r := range results {
		objects = append(objects, r...)
	}
	slices.SortStableFunc(objects, func(a, b CelestialObject) int {
		return cmp.Or(cmp.Compare(a.SystemID, b.SystemID), cmp.Compare(a.ObjectID, b.ObjectID))
	})

	logger.Info("System objects generated", "objects", len(objects))
	return objects, nil
}

func (s *Service) SaveObjects(ctx context.Context, tx *database.Tx, universeID int, rows []ObjectRow) error {
	if s.repo == nil {
		return errors.Internal("planet service has no repository")
	}
	return s.repo.CreateObjectsBatch(ctx, tx, universeID, rows)
}

func (s *Service) GetBySystemID(ctx context.Context, universeID, systemID int) ([]ObjectRow, error) {
	if s.repo == nil {
		return nil, errors.Internal("planet service has no repository")
	}
	return s.repo.GetObjectsBySystemID(ctx, universeID, systemID)
}

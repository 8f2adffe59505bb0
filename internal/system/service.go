package system

import (
	"context"
	"log/slog"

	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/shared/errors"
)

type Service struct {
	provider Provider
	cache    Cache
	logger   *slog.Logger
}

func NewService(provider Provider, cache Cache, logger *slog.Logger) *Service {
	logger.Debug("Initializing system service")

	return &Service{
		provider: provider,
		cache:    cache,
		logger:   logger,
	}
}

// ObjectsForSystem generates the objects of one system of the current
// universe, serving repeated requests from the cache.
func (s *Service) ObjectsForSystem(ctx context.Context, systemID int) ([]planet.CelestialObject, error) {
	_, objects, err := s.load(ctx, systemID)
	return objects, err
}

// GetSystem returns a system with its objects and a per-class summary.
func (s *Service) GetSystem(ctx context.Context, systemID int) (*View, error) {
	star, objects, err := s.load(ctx, systemID)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []planet.CelestialObject{}
	}
	return &View{Star: star, Objects: objects, Summary: summarize(objects)}, nil
}

// load resolves the star and its objects against a single snapshot of the
// current universe. Cache failures are logged and fall through to generation.
func (s *Service) load(ctx context.Context, systemID int) (catalog.StarRecord, []planet.CelestialObject, error) {
	logger := s.logger.With("component", "system_service", "operation", "load_system", "system_id", systemID)

	u, err := s.provider.Current()
	if err != nil {
		return catalog.StarRecord{}, nil, err
	}

	star, ok := u.Star(systemID)
	if !ok {
		return catalog.StarRecord{}, nil, errors.NotFoundf("system %d not found", systemID)
	}

	key := cacheKey(u.Fingerprint(), systemID)
	if objects, hit, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("Object cache read failed", "error", err)
	} else if hit {
		logger.Debug("Objects served from cache", "count", len(objects))
		return star, objects, nil
	}

	objects := planet.Generate(star, u.PlanetParams())
	logger.Debug("Objects generated", "count", len(objects))

	if err := s.cache.Set(ctx, key, objects); err != nil {
		logger.Warn("Object cache write failed", "error", err)
	}
	return star, objects, nil
}

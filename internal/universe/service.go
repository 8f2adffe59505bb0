package universe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"universe-builder/internal/artifact"
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/shared/config"
	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/errors"
)

type Service struct {
	repo           *Repository
	starRepo       *catalog.Repository
	catalogService *catalog.Service
	planetService  *planet.Service
	names          config.OutputConfig
	logger         *slog.Logger
}

// NewService wires the build pipeline. repo and starRepo may be nil when
// nothing is persisted; Publish then fails.
func NewService(repo *Repository, starRepo *catalog.Repository, catalogService *catalog.Service, planetService *planet.Service, names config.OutputConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing universe service")

	return &Service{
		repo:           repo,
		starRepo:       starRepo,
		catalogService: catalogService,
		planetService:  planetService,
		names:          names,
		logger:         logger,
	}
}

func (p Params) Validate() error {
	if err := p.Catalog.Validate(); err != nil {
		return err
	}
	if err := p.Planet.Validate(); err != nil {
		return err
	}
	if p.ArtifactRate < 0 || p.ArtifactRate > 1 {
		return errors.Configf("artifact rate must be between 0.0 and 1.0, got %v", p.ArtifactRate)
	}
	return nil
}

// Build loads a raw star table and runs every stage on it.
func (s *Service) Build(ctx context.Context, r io.Reader, params Params) (*Universe, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	raw, stats, err := catalog.LoadCSV(r, s.logger)
	if err != nil {
		return nil, err
	}
	return s.BuildFromStars(ctx, raw, stats, params)
}

// BuildFromStars runs the catalog, object and artifact stages over loaded
// stars. Nothing is written; the result holds every output in memory.
func (s *Service) BuildFromStars(ctx context.Context, raw []catalog.RawStar, stats catalog.LoadStats, params Params) (*Universe, error) {
	logger := s.logger.With(
		"component", "universe_service",
		"operation", "build",
		"global_seed", params.Planet.GlobalSeed,
	)
	logger.Info("Starting universe build")

	if err := params.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.catalogService.Build(ctx, raw, stats, params.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build star catalog: %w", err)
	}

	objects, err := s.planetService.GenerateAll(ctx, cat.Stars, params.Planet)
	if err != nil {
		return nil, err
	}

	tagger, err := artifact.NewTagger(params.Planet.GlobalSeed, params.ArtifactRate)
	if err != nil {
		return nil, err
	}
	rows := tagger.TagAll(objects)
	tags := artifact.Summarize(rows)

	data, err := renderData(cat, rows, s.names)
	if err != nil {
		return nil, fmt.Errorf("failed to render universe tables: %w", err)
	}

	name := params.Name
	if name == "" {
		name = fmt.Sprintf("Universe %d", params.Planet.GlobalSeed)
	}

	u := &Universe{
		Metadata: Metadata{
			Name:         name,
			Seed:         params.Planet.GlobalSeed,
			RadiusLY:     params.Catalog.RadiusLY,
			Scale:        params.Catalog.Scale,
			MaxStars:     params.Catalog.MaxStars,
			MaxPrimaries: params.Planet.MaxPrimaries,
			ArtifactRate: params.ArtifactRate,
			StarCount:    len(cat.Stars),
			ObjectCount:  len(rows),
			Fingerprint:  Fingerprint(data),
			Report:       cat.Report,
			Artifacts:    tags,
		},
		Catalog: cat,
		Objects: rows,
		params:  params,
		raw:     raw,
		stats:   stats,
	}

	logger.Info("Universe built",
		"stars", u.Metadata.StarCount,
		"objects", u.Metadata.ObjectCount,
		"artifacts", tags.Flagged,
		"fingerprint", u.Metadata.Fingerprint,
	)
	return u, nil
}

// Rebuild builds a universe from the same stars as u with a different
// global seed.
func (s *Service) Rebuild(ctx context.Context, u *Universe, seed int64) (*Universe, error) {
	params := u.params
	params.Planet.GlobalSeed = seed
	return s.BuildFromStars(ctx, u.raw, u.stats, params)
}

// Write renders every output of u and commits it into dir.
func (s *Service) Write(u *Universe, dir string) ([]File, error) {
	logger := s.logger.With("component", "universe_service", "operation", "write", "dir", dir)

	files, err := u.Files(s.names)
	if err != nil {
		return nil, err
	}
	if err := WriteFiles(dir, files); err != nil {
		logger.Error("Failed to write universe files", "error", err)
		return nil, err
	}

	logger.Info("Universe files written", "files", len(files))
	return files, nil
}

// Publish stores the universe, its stars and its objects in one transaction
// and sets u.Metadata.ID.
func (s *Service) Publish(ctx context.Context, u *Universe) error {
	if s.repo == nil || s.starRepo == nil {
		return errors.Internal("universe service has no repository")
	}

	logger := s.logger.With("component", "universe_service", "operation", "publish", "fingerprint", u.Metadata.Fingerprint)
	logger.Info("Publishing universe")

	meta := u.Metadata
	err := s.repo.db.WithTx(ctx, func(tx *database.Tx) error {
		if err := s.repo.CreateUniverse(ctx, tx, &meta); err != nil {
			return err
		}
		if err := s.starRepo.SaveStars(ctx, tx, meta.ID, u.Catalog.Stars); err != nil {
			return err
		}
		return s.planetService.SaveObjects(ctx, tx, meta.ID, u.Objects)
	})
	if err != nil {
		logger.Error("Failed to publish universe", "error", err)
		return fmt.Errorf("failed to publish universe: %w", err)
	}

	u.Metadata.ID = meta.ID
	u.Metadata.CreatedAt = meta.CreatedAt
	logger.Info("Universe published", "universe_id", meta.ID)
	return nil
}

func (s *Service) GetUniverse(ctx context.Context, id int) (*Metadata, error) {
	if s.repo == nil {
		return nil, errors.Internal("universe service has no repository")
	}
	return s.repo.GetUniverse(ctx, id)
}

func (s *Service) ListUniverses(ctx context.Context) ([]*Metadata, error) {
	if s.repo == nil {
		return nil, errors.Internal("universe service has no repository")
	}
	return s.repo.ListUniverses(ctx)
}

// PublishedStars returns the stored catalog of a published universe.
func (s *Service) PublishedStars(ctx context.Context, id int) ([]catalog.StarRecord, error) {
	if !s.Persistent() {
		return nil, errors.Internal("universe service has no repository")
	}
	if _, err := s.GetUniverse(ctx, id); err != nil {
		return nil, err
	}
	return s.starRepo.GetStars(ctx, id)
}

// PublishedObjects returns the stored objects of one system of a published
// universe.
func (s *Service) PublishedObjects(ctx context.Context, id, systemID int) ([]planet.ObjectRow, error) {
	if _, err := s.GetUniverse(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.planetService.GetBySystemID(ctx, id, systemID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NotFoundf("system %d has no stored objects in universe %d", systemID, id)
	}
	return rows, nil
}

func (s *Service) DeleteUniverse(ctx context.Context, id int) error {
	if s.repo == nil {
		return errors.Internal("universe service has no repository")
	}
	s.logger.Info("Deleting universe", "universe_id", id)
	return s.repo.DeleteUniverse(ctx, id)
}

// Persistent reports whether Publish can store universes.
func (s *Service) Persistent() bool {
	return s.repo != nil && s.starRepo != nil
}

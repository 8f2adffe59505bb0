package server

import (
	"log/slog"
	"net/http"

	"universe-builder/internal/auth"
	"universe-builder/internal/middleware"
	planetHandlers "universe-builder/internal/planet/handlers"
	serverHandlers "universe-builder/internal/server/handlers"
	"universe-builder/internal/spatial"
	spatialHandlers "universe-builder/internal/spatial/handlers"
	"universe-builder/internal/system"
	systemHandlers "universe-builder/internal/system/handlers"
	"universe-builder/internal/universe"
	universeHandlers "universe-builder/internal/universe/handlers"
)

type Routes struct {
	health          *serverHandlers.HealthHandler
	universeService *universe.Service
	systemService   *system.Service
	store           *universe.Store
	issuer          *auth.TokenIssuer
	logger          *slog.Logger
}

// NewRoutes collects the handlers' dependencies. issuer may be nil, in which
// case admin endpoints refuse every request.
func NewRoutes(health *serverHandlers.HealthHandler, universeService *universe.Service, systemService *system.Service, store *universe.Store, issuer *auth.TokenIssuer, logger *slog.Logger) *Routes {
	return &Routes{
		health:          health,
		universeService: universeService,
		systemService:   systemService,
		store:           store,
		issuer:          issuer,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	universeHandler := universeHandlers.NewUniverseHandler(r.universeService, r.store, r.logger)
	systemHandler := systemHandlers.NewSystemHandler(r.systemService, r.logger)
	planetHandler := planetHandlers.NewPlanetHandler(r.systemService, r.logger)
	spatialHandler := spatialHandlers.NewSpatialHandler(spatial.NewService(r.store, r.logger), r.logger)
	requireAdmin := middleware.RequireAdmin(r.issuer, r.logger)

	// Public endpoints
	mux.Handle("GET /api/health", r.health)
	mux.HandleFunc("GET /api/universe", universeHandler.GetCurrent)
	mux.HandleFunc("GET /api/stars", universeHandler.GetStars)
	mux.HandleFunc("GET /api/stars/{id}", universeHandler.GetStar)
	mux.HandleFunc("GET /api/stars/{id}/objects", planetHandler.GetBySystemID)
	mux.HandleFunc("GET /api/stars/{id}/neighbors", spatialHandler.GetNeighbors)
	mux.HandleFunc("GET /api/systems/{id}", systemHandler.GetSystem)
	mux.HandleFunc("GET /api/region", spatialHandler.GetRegion)
	mux.HandleFunc("GET /api/map", universeHandler.GetMap)

	// Admin-only endpoints
	mux.Handle("POST /api/admin/universe", requireAdmin(http.HandlerFunc(universeHandler.Rebuild)))

	publicEndpoints := []string{"/api/health", "/api/universe", "/api/stars", "/api/stars/{id}", "/api/stars/{id}/objects", "/api/stars/{id}/neighbors", "/api/systems/{id}", "/api/region", "/api/map"}
	adminEndpoints := []string{"/api/admin/universe"}

	if r.universeService.Persistent() {
		mux.HandleFunc("GET /api/universes", universeHandler.GetUniverses)
		mux.HandleFunc("GET /api/universes/{id}", universeHandler.GetUniverse)
		mux.HandleFunc("GET /api/universes/{id}/stars", universeHandler.GetPublishedStars)
		mux.HandleFunc("GET /api/universes/{id}/systems/{systemId}/objects", universeHandler.GetPublishedObjects)
		mux.Handle("DELETE /api/admin/universes/{id}", requireAdmin(http.HandlerFunc(universeHandler.DeleteUniverse)))
		publicEndpoints = append(publicEndpoints, "/api/universes", "/api/universes/{id}", "/api/universes/{id}/stars", "/api/universes/{id}/systems/{systemId}/objects")
		adminEndpoints = append(adminEndpoints, "/api/admin/universes/{id}")
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", publicEndpoints,
		"admin_endpoints", adminEndpoints,
	)

	return mux
}

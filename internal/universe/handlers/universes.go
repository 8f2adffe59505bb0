package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"
	"universe-builder/internal/universe"
)

const maxRebuildBody = 1 << 10

type UniverseHandler struct {
	service *universe.Service
	store   *universe.Store
	logger  *slog.Logger
}

func NewUniverseHandler(service *universe.Service, store *universe.Store, logger *slog.Logger) *UniverseHandler {
	return &UniverseHandler{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// GetCurrent handles GET /api/universe
func (h *UniverseHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_current_universe")

	u, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, u.Metadata)
}

// GetStars handles GET /api/stars
func (h *UniverseHandler) GetStars(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_stars")

	u, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, u.Catalog.Stars)
}

// GetStar handles GET /api/stars/{id}
func (h *UniverseHandler) GetStar(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_star")

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	star, ok := u.Star(id)
	if !ok {
		response.Error(w, r, logger, errors.NotFoundf("star not found with id: %d", id))
		return
	}
	response.Success(w, http.StatusOK, star)
}

// GetMap handles GET /api/map. The grid is sent as plain text.
func (h *UniverseHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_map")

	u, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, u.Catalog.Map.String()); err != nil {
		logger.Debug("Failed to write map", "error", err)
	}
}

type rebuildRequest struct {
	Seed *int64 `json:"seed"`
}

// Rebuild handles POST /api/admin/universe - Admin only. The current stars
// are regenerated with a new seed, published when a database is configured
// and then served.
func (h *UniverseHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("handler", "rebuild_universe")

	var req rebuildRequest
	body := http.MaxBytesReader(w, r.Body, maxRebuildBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid request body", err))
		return
	}
	if req.Seed == nil {
		response.Error(w, r, logger, errors.Validation("seed is required"))
		return
	}

	current, err := h.store.Get()
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Info("Rebuilding universe", "seed", *req.Seed)
	next, err := h.service.Rebuild(ctx, current, *req.Seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if h.service.Persistent() {
		if err := h.service.Publish(ctx, next); err != nil {
			response.Error(w, r, logger, err)
			return
		}
	}

	h.store.Set(next)
	response.Success(w, http.StatusCreated, next.Metadata)
}

// GetUniverses handles GET /api/universes
func (h *UniverseHandler) GetUniverses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_universes")

	universes, err := h.service.ListUniverses(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if universes == nil {
		universes = []*universe.Metadata{}
	}
	response.Success(w, http.StatusOK, universes)
}

// GetUniverse handles GET /api/universes/{id}
func (h *UniverseHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_universe")

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	m, err := h.service.GetUniverse(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, m)
}

// GetPublishedStars handles GET /api/universes/{id}/stars
func (h *UniverseHandler) GetPublishedStars(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_published_stars")

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	stars, err := h.service.PublishedStars(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	if stars == nil {
		stars = []catalog.StarRecord{}
	}
	response.Success(w, http.StatusOK, stars)
}

// GetPublishedObjects handles GET /api/universes/{id}/systems/{systemId}/objects
func (h *UniverseHandler) GetPublishedObjects(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_published_objects")

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	systemID, err := strconv.Atoi(r.PathValue("systemId"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	rows, err := h.service.PublishedObjects(r.Context(), id, systemID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, rows)
}

// DeleteUniverse handles DELETE /api/admin/universes/{id} - Admin only
func (h *UniverseHandler) DeleteUniverse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_universe")

	id, err := pathID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.DeleteUniverse(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, errors.Validation("id is required")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.WrapValidation("invalid id format", err)
	}
	return id, nil
}

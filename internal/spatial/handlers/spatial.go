package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"
	"universe-builder/internal/spatial"
)

const defaultNeighborRadius = 5.0

type SpatialHandler struct {
	service *spatial.Service
	logger  *slog.Logger
}

func NewSpatialHandler(service *spatial.Service, logger *slog.Logger) *SpatialHandler {
	return &SpatialHandler{service: service, logger: logger}
}

// GetNeighbors handles GET /api/stars/{id}/neighbors?radius=N
func (h *SpatialHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("handler", "get_neighbors")

	starID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid star ID format", err))
		return
	}

	radius := defaultNeighborRadius
	if v := r.URL.Query().Get("radius"); v != "" {
		if radius, err = strconv.ParseFloat(v, 64); err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid radius", err))
			return
		}
	}

	neighbors, err := h.service.Neighbors(ctx, starID, radius)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if neighbors == nil {
		neighbors = []spatial.Neighbor{}
	}

	response.Success(w, http.StatusOK, neighbors)
}

// GetRegion handles GET /api/region?x0=&y0=&x1=&y1=
func (h *SpatialHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("handler", "get_region")

	q := r.URL.Query()
	var coords [4]int
	for i, key := range []string{"x0", "y0", "x1", "y1"} {
		v, err := strconv.Atoi(q.Get(key))
		if err != nil {
			response.Error(w, r, logger, errors.WrapValidation("invalid "+key, err))
			return
		}
		coords[i] = v
	}

	stars, err := h.service.InRegion(ctx, spatial.Region{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if stars == nil {
		stars = []catalog.StarRecord{}
	}

	response.Success(w, http.StatusOK, stars)
}

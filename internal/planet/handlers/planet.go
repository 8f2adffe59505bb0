package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"universe-builder/internal/planet"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"
)

// ObjectSource returns the objects of one system of the current universe.
type ObjectSource interface {
	ObjectsForSystem(ctx context.Context, systemID int) ([]planet.CelestialObject, error)
}

type PlanetHandler struct {
	source ObjectSource
	logger *slog.Logger
}

func NewPlanetHandler(source ObjectSource, logger *slog.Logger) *PlanetHandler {
	return &PlanetHandler{source: source, logger: logger}
}

func (h *PlanetHandler) GetBySystemID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("handler", "get_objects_by_system")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	systemIDStr := r.PathValue("id")
	if systemIDStr == "" {
		response.Error(w, r, logger, errors.Validation("system ID is required"))
		return
	}

	systemID, err := strconv.Atoi(systemIDStr)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	objects, err := h.source.ObjectsForSystem(ctx, systemID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if objects == nil {
		objects = []planet.CelestialObject{}
	}

	response.Success(w, http.StatusOK, objects)
}

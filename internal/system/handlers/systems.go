package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"universe-builder/internal/shared/errors"
	"universe-builder/internal/shared/response"
	"universe-builder/internal/system"
)

type SystemHandler struct {
	service *system.Service
	logger  *slog.Logger
}

func NewSystemHandler(service *system.Service, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{service: service, logger: logger}
}

// GetSystem handles GET /api/systems/{id}
func (h *SystemHandler) GetSystem(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_system")

	systemID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid system ID format", err))
		return
	}

	view, err := h.service.GetSystem(r.Context(), systemID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	response.Success(w, http.StatusOK, view)
}

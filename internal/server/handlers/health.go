package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"universe-builder/internal/shared/response"
	"universe-builder/internal/universe"
)

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	Cache       string `json:"cache"`
	Universe    string `json:"universe"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Pinger is satisfied by the database and the Redis client.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	cache  Pinger
	store  *universe.Store
	logger *slog.Logger
}

// NewHealthHandler reports on the given dependencies. db and cache may be
// nil when the server runs without them.
func NewHealthHandler(db, cache Pinger, store *universe.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, store: store, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  check(ctx, logger, "database", h.db),
		Cache:     check(ctx, logger, "cache", h.cache),
		Universe:  "not built",
	}

	if u, err := h.store.Get(); err == nil {
		resp.Universe = u.Metadata.Name
		resp.Fingerprint = u.Metadata.Fingerprint
	}

	response.Success(w, http.StatusOK, resp)
}

func check(ctx context.Context, logger *slog.Logger, name string, p Pinger) string {
	if p == nil {
		return "not configured"
	}
	if err := p.PingContext(ctx); err != nil {
		logger.Warn("Dependency ping failed", "dependency", name, "error", err)
		return "disconnected"
	}
	return "connected"
}

package handlers

import (
	"context"
	"net/http"
	"time"
)

// StorePinger verifies reachability of the external record store.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and backend reachability.
type HealthHandler struct {
	store StorePinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store StorePinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payload := map[string]string{
		"status":    "ok",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.store == nil {
		payload["status"] = "error"
		payload["database"] = "not configured"
		respondWithJSON(w, http.StatusInternalServerError, payload)
		return
	}

	if err := h.store.Ping(ctx); err != nil {
		payload["status"] = "degraded"
		payload["database"] = "unreachable"
		respondWithJSON(w, http.StatusServiceUnavailable, payload)
		return
	}

	respondWithJSON(w, http.StatusOK, payload)
}

package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// sessionStore is the slice of the storage factory the health surface reads.
type sessionStore interface {
	Count(ctx context.Context) (int, error)
	IsDegradedMode() bool
	IsRedisHealthy() bool
}

// HealthHandler reports storage health for probes and dashboards.
type HealthHandler struct {
	store sessionStore
}

func NewHealthHandler(store sessionStore) *HealthHandler {
	return &HealthHandler{store: store}
}

type healthResponse struct {
	Status       string `json:"status"`
	DegradedMode bool   `json:"degradedMode"`
	RedisHealthy bool   `json:"redisHealthy"`
	// Sessions is omitted when the count is unavailable.
	Sessions *int `json:"sessions,omitempty"`
}

// Health handles GET /health. Degraded storage still answers 200: the
// engine keeps serving sessions from the fallback backend.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:       "ok",
		DegradedMode: h.store.IsDegradedMode(),
		RedisHealthy: h.store.IsRedisHealthy(),
	}

	count, err := h.store.Count(r.Context())
	if err != nil {
		// Failover may have happened mid-call; one retry lands on the
		// fallback backend.
		count, err = h.store.Count(r.Context())
	}
	if err != nil {
		slog.Warn("session count unavailable", "err", err)
	} else {
		resp.Sessions = &count
	}

	if resp.DegradedMode {
		resp.Status = "degraded"
	}
	respondJSON(w, http.StatusOK, resp)
}

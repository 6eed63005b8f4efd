package handler

import (
	"context"
	"net/http"

	"github.com/Stewz00/doc-analysis-api/internal/logging"
)

// Checker is a dependency that must be reachable for the service to be ready.
type Checker interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checkers []Checker
	logger   logging.Logger
}

func NewHealthHandler(logger logging.Logger, checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers, logger: logger}
}

type readinessResponse struct {
	Status string `json:"status"`
	Failed string `json:"failed,omitempty"`
}

// Health reports liveness only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ready pings every dependency and answers 503 naming the first one down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.checkers {
		if err := c.Ping(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "readiness check failed", "dependency", c.Name(), "error", err)
			writeJSON(w, http.StatusServiceUnavailable, readinessResponse{Status: "unavailable", Failed: c.Name()})
			return
		}
	}
	writeJSON(w, http.StatusOK, readinessResponse{Status: "ready"})
}

package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"resalepulse/internal/services"
)

// HealthHandler reports process liveness and snapshot readiness.
type HealthHandler struct {
	service AnalyticsServiceInterface
	logger  *slog.Logger
	started time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(service AnalyticsServiceInterface, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("component", "health_handler")),
		started: time.Now(),
	}
}

// ServeHTTP handles GET /healthz. The process is healthy as soon as it can
// serve; snapshot state is reported but never fails the check, since the
// first refresh may not have run yet.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}

	snapshot, err := h.service.Snapshot()
	switch {
	case err == nil:
		body["snapshot"] = map[string]interface{}{
			"id":           snapshot.ID.String(),
			"fetched_at":   snapshot.FetchedAt,
			"record_count": len(snapshot.Records),
		}
	case errors.Is(err, services.ErrNoSnapshot):
		body["snapshot"] = nil
	default:
		h.logger.ErrorContext(r.Context(), "health snapshot probe failed",
			slog.String("error", err.Error()))
		body["snapshot"] = nil
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, body)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/user/cat-census/internal/delivery/http/response"
	"github.com/user/cat-census/internal/repository"
	"github.com/user/cat-census/internal/usecase"
	"go.uber.org/zap"
)

// Pinger is any backing store whose health can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	census  usecase.Census
	pingers map[string]Pinger
	logger  *zap.Logger
}

// NewHandler creates the API handler. pingers names the optional stores
// reported by the health check.
func NewHandler(census usecase.Census, pingers map[string]Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		census:  census,
		pingers: pingers,
		logger:  logger,
	}
}

func (h *Handler) HandleRunCensus(w http.ResponseWriter, r *http.Request) {
	report, err := h.census.Run(r.Context(), usecase.RunHooks{})
	if err != nil {
		if errors.Is(err, usecase.ErrNoCats) && report != nil {
			h.writeJSON(w, http.StatusUnprocessableEntity, response.NewCensusResponse(report, err.Error()))
			return
		}
		h.logger.Error("Census run failed", zap.Error(err))
		h.writeJSONError(w, "Census run failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewCensusResponse(report, ""))
}

func (h *Handler) HandleLatestCensus(w http.ResponseWriter, r *http.Request) {
	report, err := h.census.Latest(r.Context())
	switch {
	case errors.Is(err, usecase.ErrReportsDisabled):
		h.writeJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, repository.ErrReportNotFound):
		h.writeJSONError(w, "No census report stored yet", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("Failed to load latest census", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.NewCensusResponse(report, ""))
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthStatus := map[string]string{"status": "ok"}
	healthy := true
	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			healthStatus[name] = "unhealthy"
			healthy = false
			h.logger.Error("Health check failed", zap.String("store", name), zap.Error(err))
			continue
		}
		healthStatus[name] = "healthy"
	}

	if !healthy {
		healthStatus["status"] = "degraded"
		h.writeJSON(w, http.StatusServiceUnavailable, healthStatus)
		return
	}
	h.writeJSON(w, http.StatusOK, healthStatus)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}


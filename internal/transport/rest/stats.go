package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	GetStatistics(ctx context.Context) (domain.Statistics, error)
}

// StatsHandler serves the learning-statistics REST endpoint.
type StatsHandler struct {
	svc statsService
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

// Statistics handles GET /api/statistics.
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStatistics(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatisticsResponse(stats))
}

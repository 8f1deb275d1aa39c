package rest

import "net/http"

// NewMux registers every REST route on a fresh ServeMux. Request middleware
// wraps the returned mux at the server level.
func NewMux(learning *LearningHandler, stats *StatsHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/cards/due", learning.ListDue)
	mux.HandleFunc("POST /api/cards/{id}/evaluate", learning.Evaluate)
	mux.HandleFunc("PUT /api/cards/{id}/status", learning.SetStatus)
	mux.HandleFunc("GET /api/cards/{id}/attempts", learning.ListAttempts)
	mux.HandleFunc("POST /api/notes/{id}/cards", learning.IngestCards)
	mux.HandleFunc("GET /api/notes/{id}/progress", learning.NoteProgress)
	mux.HandleFunc("GET /api/statistics", stats.Statistics)

	mux.HandleFunc("GET /healthz", health.Live)
	mux.HandleFunc("GET /readyz", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	return mux
}

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/internal/service/learning"
)

// learningService defines the minimal interface needed by LearningHandler.
type learningService interface {
	Evaluate(ctx context.Context, input learning.EvaluateInput) (*learning.EvaluationResult, error)
	ListDue(ctx context.Context, input learning.ListDueInput) ([]domain.Card, error)
	ListAttempts(ctx context.Context, input learning.ListAttemptsInput) ([]domain.Attempt, error)
	SetStatus(ctx context.Context, input learning.SetStatusInput) (domain.Card, error)
	IngestCards(ctx context.Context, input learning.IngestCardsInput) (*learning.IngestResult, error)
	NoteProgress(ctx context.Context, noteID uuid.UUID) (domain.StatusCounts, error)
}

// LearningHandler serves the card-mastery REST endpoints.
type LearningHandler struct {
	svc learningService
	log *slog.Logger
}

// NewLearningHandler creates a LearningHandler.
func NewLearningHandler(svc learningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{svc: svc, log: logger.With("handler", "learning")}
}

// ListDue handles GET /api/cards/due?limit=N.
func (h *LearningHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	var input learning.ListDueInput
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = limit
	}

	cards, err := h.svc.ListDue(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cards": toCardResponses(cards)})
}

type evaluateRequest struct {
	NoteID      string  `json:"noteId"`
	Role        *string `json:"role"`
	Explanation string  `json:"explanation"`
}

// Evaluate handles POST /api/cards/{id}/evaluate.
func (h *LearningHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	noteID, err := uuid.Parse(req.NoteID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "noteId must be a UUID")
		return
	}

	result, err := h.svc.Evaluate(r.Context(), learning.EvaluateInput{
		CardID:      cardID,
		NoteID:      noteID,
		Explanation: req.Explanation,
		Role:        req.Role,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEvaluationResponse(result))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PUT /api/cards/{id}/status.
func (h *LearningHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.SetStatus(r.Context(), learning.SetStatusInput{
		CardID: cardID,
		Status: domain.CardStatus(req.Status),
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toCardResponse(updated))
}

// ListAttempts handles GET /api/cards/{id}/attempts?limit=N.
func (h *LearningHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	input := learning.ListAttemptsInput{CardID: cardID}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = limit
	}

	attempts, err := h.svc.ListAttempts(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"attempts": toAttemptResponses(attempts)})
}

type ingestRequest struct {
	Terms []string `json:"terms"`
}

// IngestCards handles POST /api/notes/{id}/cards.
func (h *LearningHandler) IngestCards(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.IngestCards(r.Context(), learning.IngestCardsInput{
		NoteID: noteID,
		Terms:  req.Terms,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cards":   toCardResponses(result.Cards),
		"created": result.Created,
	})
}

// NoteProgress handles GET /api/notes/{id}/progress.
func (h *LearningHandler) NoteProgress(w http.ResponseWriter, r *http.Request) {
	noteID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	counts, err := h.svc.NoteProgress(r.Context(), noteID)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatusCountsResponse(counts))
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

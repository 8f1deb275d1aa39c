package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/internal/service/learning"
)

type learningServiceMock struct {
	EvaluateFunc     func(ctx context.Context, input learning.EvaluateInput) (*learning.EvaluationResult, error)
	ListDueFunc      func(ctx context.Context, input learning.ListDueInput) ([]domain.Card, error)
	ListAttemptsFunc func(ctx context.Context, input learning.ListAttemptsInput) ([]domain.Attempt, error)
	SetStatusFunc    func(ctx context.Context, input learning.SetStatusInput) (domain.Card, error)
	IngestCardsFunc  func(ctx context.Context, input learning.IngestCardsInput) (*learning.IngestResult, error)
	NoteProgressFunc func(ctx context.Context, noteID uuid.UUID) (domain.StatusCounts, error)
}

func (m *learningServiceMock) Evaluate(ctx context.Context, input learning.EvaluateInput) (*learning.EvaluationResult, error) {
	return m.EvaluateFunc(ctx, input)
}

func (m *learningServiceMock) ListDue(ctx context.Context, input learning.ListDueInput) ([]domain.Card, error) {
	return m.ListDueFunc(ctx, input)
}

func (m *learningServiceMock) ListAttempts(ctx context.Context, input learning.ListAttemptsInput) ([]domain.Attempt, error) {
	return m.ListAttemptsFunc(ctx, input)
}

func (m *learningServiceMock) SetStatus(ctx context.Context, input learning.SetStatusInput) (domain.Card, error) {
	return m.SetStatusFunc(ctx, input)
}

func (m *learningServiceMock) IngestCards(ctx context.Context, input learning.IngestCardsInput) (*learning.IngestResult, error) {
	return m.IngestCardsFunc(ctx, input)
}

func (m *learningServiceMock) NoteProgress(ctx context.Context, noteID uuid.UUID) (domain.StatusCounts, error) {
	return m.NoteProgressFunc(ctx, noteID)
}

func newTestMux(svc *learningServiceMock) *http.ServeMux {
	logger := slog.Default()
	learningHandler := NewLearningHandler(svc, logger)
	statsHandler := NewStatsHandler(&statsServiceMock{}, logger)
	healthHandler := NewHealthHandler(pingerOK{}, "test")
	return NewMux(learningHandler, statsHandler, healthHandler)
}

type pingerOK struct{}

func (pingerOK) Ping(ctx context.Context) error { return nil }

func TestLearningHandler_ListDue(t *testing.T) {
	cardID := uuid.New()
	svc := &learningServiceMock{
		ListDueFunc: func(ctx context.Context, input learning.ListDueInput) ([]domain.Card, error) {
			if input.Limit != 10 {
				t.Errorf("limit: got %d, want 10", input.Limit)
			}
			return []domain.Card{{ID: cardID, Term: "entropy", Status: domain.CardStatusNotMastered}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/cards/due?limit=10", nil)
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Cards []cardResponse `json:"cards"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Cards) != 1 || body.Cards[0].Term != "entropy" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestLearningHandler_ListDue_BadLimit(t *testing.T) {
	svc := &learningServiceMock{}

	req := httptest.NewRequest(http.MethodGet, "/api/cards/due?limit=abc", nil)
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestLearningHandler_Evaluate(t *testing.T) {
	cardID := uuid.New()
	noteID := uuid.New()
	attemptID := uuid.New()

	svc := &learningServiceMock{
		EvaluateFunc: func(ctx context.Context, input learning.EvaluateInput) (*learning.EvaluationResult, error) {
			if input.CardID != cardID || input.NoteID != noteID {
				t.Errorf("unexpected ids: %v / %v", input.CardID, input.NoteID)
			}
			if input.Role == nil || *input.Role != "college student" {
				t.Errorf("role: got %v", input.Role)
			}
			return &learning.EvaluationResult{
				AttemptID:     attemptID,
				AttemptNumber: 1,
				Score:         92,
				Status:        domain.CardStatusMastered,
				Feedback:      "great",
				Card:          domain.Card{ID: cardID, NoteID: noteID, Status: domain.CardStatusMastered},
			}, nil
		},
	}

	payload := `{"noteId":"` + noteID.String() + `","role":"college student","explanation":"because"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+cardID.String()+"/evaluate", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var body evaluationResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Score != 92 || body.Status != "MASTERED" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.Highlights == nil || body.Suggestions == nil {
		t.Error("highlights and suggestions must serialize as arrays, not null")
	}
}

func TestLearningHandler_Evaluate_Conflict(t *testing.T) {
	cardID := uuid.New()
	noteID := uuid.New()

	svc := &learningServiceMock{
		EvaluateFunc: func(ctx context.Context, input learning.EvaluateInput) (*learning.EvaluationResult, error) {
			return nil, domain.ErrConflict
		},
	}

	payload := `{"noteId":"` + noteID.String() + `","explanation":"because"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cards/"+cardID.String()+"/evaluate", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestLearningHandler_Evaluate_BadCardID(t *testing.T) {
	svc := &learningServiceMock{}

	req := httptest.NewRequest(http.MethodPost, "/api/cards/nope/evaluate", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestLearningHandler_SetStatus(t *testing.T) {
	cardID := uuid.New()

	svc := &learningServiceMock{
		SetStatusFunc: func(ctx context.Context, input learning.SetStatusInput) (domain.Card, error) {
			if input.Status != domain.CardStatusNeedsReview {
				t.Errorf("status: got %s", input.Status)
			}
			return domain.Card{ID: cardID, Status: domain.CardStatusNeedsReview}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/cards/"+cardID.String()+"/status", strings.NewReader(`{"status":"NEEDS_REVIEW"}`))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestLearningHandler_SetStatus_ValidationError(t *testing.T) {
	cardID := uuid.New()

	svc := &learningServiceMock{
		SetStatusFunc: func(ctx context.Context, input learning.SetStatusInput) (domain.Card, error) {
			return domain.Card{}, domain.NewValidationError("status", "cannot reset a card to NOT_STARTED")
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/cards/"+cardID.String()+"/status", strings.NewReader(`{"status":"NOT_STARTED"}`))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestLearningHandler_IngestCards(t *testing.T) {
	noteID := uuid.New()

	svc := &learningServiceMock{
		IngestCardsFunc: func(ctx context.Context, input learning.IngestCardsInput) (*learning.IngestResult, error) {
			if input.NoteID != noteID {
				t.Errorf("note id: got %v", input.NoteID)
			}
			return &learning.IngestResult{
				Cards:   []domain.Card{{ID: uuid.New(), Term: "osmosis"}},
				Created: 1,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/notes/"+noteID.String()+"/cards", strings.NewReader(`{"terms":["osmosis"]}`))
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Created int `json:"created"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Created != 1 {
		t.Errorf("created: got %d, want 1", body.Created)
	}
}

func TestLearningHandler_NoteProgress_NotFound(t *testing.T) {
	svc := &learningServiceMock{
		NoteProgressFunc: func(ctx context.Context, noteID uuid.UUID) (domain.StatusCounts, error) {
			return domain.StatusCounts{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/notes/"+uuid.NewString()+"/progress", nil)
	rec := httptest.NewRecorder()
	newTestMux(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

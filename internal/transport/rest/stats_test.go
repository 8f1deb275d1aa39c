package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

type statsServiceMock struct {
	GetStatisticsFunc func(ctx context.Context) (domain.Statistics, error)
}

func (m *statsServiceMock) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	if m.GetStatisticsFunc == nil {
		return domain.Statistics{}, nil
	}
	return m.GetStatisticsFunc(ctx)
}

func TestStatsHandler_Statistics(t *testing.T) {
	svc := &statsServiceMock{
		GetStatisticsFunc: func(ctx context.Context) (domain.Statistics, error) {
			return domain.Statistics{
				StatusCounts: domain.StatusCounts{Mastered: 2, NeedsReview: 1, Total: 3},
				DueCount:     4,
				Streak:       6,
				Trend7d: []domain.DayAttemptCount{
					{Date: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC), Count: 0},
					{Date: time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), Count: 5},
				},
				ActiveDays7d:  1,
				WeekCompleted: 12,
				WeekTarget:    30,
			}, nil
		},
	}

	handler := NewStatsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rec := httptest.NewRecorder()
	handler.Statistics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var body statisticsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.StatusCounts.Total != 3 {
		t.Errorf("total: got %d, want 3", body.StatusCounts.Total)
	}
	if body.Streak != 6 || body.WeekCompleted != 12 || body.WeekTarget != 30 {
		t.Errorf("unexpected body: %+v", body)
	}
	if len(body.Trend) != 2 || body.Trend[1].Date != "2025-06-18" || body.Trend[1].Count != 5 {
		t.Errorf("trend: got %+v", body.Trend)
	}
}

func TestStatsHandler_Statistics_Unauthorized(t *testing.T) {
	svc := &statsServiceMock{
		GetStatisticsFunc: func(ctx context.Context) (domain.Statistics, error) {
			return domain.Statistics{}, domain.ErrUnauthorized
		},
	}

	handler := NewStatsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rec := httptest.NewRecorder()
	handler.Statistics(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

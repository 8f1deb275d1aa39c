package rest

import (
	"time"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/internal/service/learning"
)

type cardResponse struct {
	ID             string     `json:"id"`
	NoteID         string     `json:"noteId"`
	Term           string     `json:"term"`
	Status         string     `json:"status"`
	ReviewCount    int        `json:"reviewCount"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
	MasteredAt     *time.Time `json:"masteredAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toCardResponse(c domain.Card) cardResponse {
	return cardResponse{
		ID:             c.ID.String(),
		NoteID:         c.NoteID.String(),
		Term:           c.Term,
		Status:         c.Status.String(),
		ReviewCount:    c.ReviewCount,
		LastReviewedAt: c.LastReviewedAt,
		MasteredAt:     c.MasteredAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCardResponses(cards []domain.Card) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	return out
}

type evaluationResponse struct {
	AttemptID     string       `json:"attemptId"`
	AttemptNumber int          `json:"attemptNumber"`
	Score         int          `json:"score"`
	Status        string       `json:"status"`
	Feedback      string       `json:"feedback"`
	Highlights    []string     `json:"highlights"`
	Suggestions   []string     `json:"suggestions"`
	Fallback      bool         `json:"fallback"`
	Card          cardResponse `json:"card"`
}

func toEvaluationResponse(r *learning.EvaluationResult) evaluationResponse {
	highlights := r.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	suggestions := r.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return evaluationResponse{
		AttemptID:     r.AttemptID.String(),
		AttemptNumber: r.AttemptNumber,
		Score:         r.Score,
		Status:        r.Status.String(),
		Feedback:      r.Feedback,
		Highlights:    highlights,
		Suggestions:   suggestions,
		Fallback:      r.Fallback,
		Card:          toCardResponse(r.Card),
	}
}

type attemptResponse struct {
	ID            string    `json:"id"`
	CardID        string    `json:"cardId"`
	Role          string    `json:"role"`
	Explanation   string    `json:"explanation"`
	Score         int       `json:"score"`
	Status        string    `json:"status"`
	AttemptNumber int       `json:"attemptNumber"`
	AttemptedAt   time.Time `json:"attemptedAt"`
}

func toAttemptResponses(attempts []domain.Attempt) []attemptResponse {
	out := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptResponse{
			ID:            a.ID.String(),
			CardID:        a.CardID.String(),
			Role:          a.Role,
			Explanation:   a.Explanation,
			Score:         a.Score,
			Status:        a.Status.String(),
			AttemptNumber: a.AttemptNumber,
			AttemptedAt:   a.AttemptedAt,
		})
	}
	return out
}

type statusCountsResponse struct {
	NotStarted   int `json:"notStarted"`
	NotMastered  int `json:"notMastered"`
	NeedsImprove int `json:"needsImprove"`
	NeedsReview  int `json:"needsReview"`
	Mastered     int `json:"mastered"`
	Total        int `json:"total"`
}

func toStatusCountsResponse(c domain.StatusCounts) statusCountsResponse {
	return statusCountsResponse{
		NotStarted:   c.NotStarted,
		NotMastered:  c.NotMastered,
		NeedsImprove: c.NeedsImprove,
		NeedsReview:  c.NeedsReview,
		Mastered:     c.Mastered,
		Total:        c.Total,
	}
}

type trendDayResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type statisticsResponse struct {
	StatusCounts  statusCountsResponse `json:"statusCounts"`
	DueCount      int                  `json:"dueCount"`
	Streak        int                  `json:"streak"`
	Trend         []trendDayResponse   `json:"trend"`
	ActiveDays    int                  `json:"activeDays"`
	WeekCompleted int                  `json:"weekCompleted"`
	WeekTarget    int                  `json:"weekTarget"`
}

func toStatisticsResponse(s domain.Statistics) statisticsResponse {
	trend := make([]trendDayResponse, 0, len(s.Trend7d))
	for _, d := range s.Trend7d {
		trend = append(trend, trendDayResponse{
			Date:  d.Date.Format("2006-01-02"),
			Count: d.Count,
		})
	}
	return statisticsResponse{
		StatusCounts:  toStatusCountsResponse(s.StatusCounts),
		DueCount:      s.DueCount,
		Streak:        s.Streak,
		Trend:         trend,
		ActiveDays:    s.ActiveDays7d,
		WeekCompleted: s.WeekCompleted,
		WeekTarget:    s.WeekTarget,
	}
}

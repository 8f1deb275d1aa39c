package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// defaultRole is the grading audience used when neither the request nor the
// note names one.
const defaultRole = "5-year-old child"

// Fallback verdict used when the grader fails or returns something
// unparsable. A transient grading outage must never fail the learning flow.
const (
	fallbackScore    = 60
	fallbackFeedback = "Thanks for your explanation! Keep practicing and it will keep getting better."
)

// Evaluate grades a self-explanation, transitions the card and appends an
// immutable attempt record. The card update and the attempt insert commit
// atomically; a concurrent evaluation of the same card loses the optimistic
// race and surfaces domain.ErrConflict, which callers may retry.
func (s *Service) Evaluate(ctx context.Context, input EvaluateInput) (*EvaluationResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	if c.NoteID != input.NoteID {
		return nil, fmt.Errorf("card %s in note %s: %w", c.ID, input.NoteID, domain.ErrNotFound)
	}

	role, err := s.resolveRole(ctx, userID, c.NoteID, input.Role)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()

	verdict, fallback := s.gradeWithFallback(ctx, c.Term, role, input.Explanation)

	status, err := domain.StatusForScore(verdict.Score)
	if err != nil {
		return nil, fmt.Errorf("map score: %w", err)
	}

	attempt := &domain.Attempt{
		ID:            uuid.New(),
		CardID:        c.ID,
		NoteID:        c.NoteID,
		Role:          role,
		Explanation:   input.Explanation,
		Score:         verdict.Score,
		Status:        status,
		Feedback:      verdict.Raw,
		AttemptNumber: c.ReviewCount + 1,
		AttemptedAt:   now,
	}

	params := card.ReviewUpdateParams{
		Status:              status,
		LastReviewedAt:      now,
		ExpectedReviewCount: c.ReviewCount,
	}
	if status == domain.CardStatusMastered && c.MasteredAt == nil {
		params.SetMasteredAt = &now
	}
	if c.Status == domain.CardStatusMastered && status != domain.CardStatusMastered && s.cfg.ClearMasteredOnRegress {
		params.ClearMasteredAt = true
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.cards.UpdateReview(txCtx, userID, c.ID, params); err != nil {
			return fmt.Errorf("update card: %w", err)
		}
		if err := s.attempts.Create(txCtx, attempt); err != nil {
			return fmt.Errorf("create attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.cards.GetByID(ctx, userID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("reload card: %w", err)
	}

	s.log.InfoContext(ctx, "explanation evaluated",
		slog.String("card_id", c.ID.String()),
		slog.Int("attempt_number", attempt.AttemptNumber),
		slog.Int("score", verdict.Score),
		slog.String("status", status.String()),
		slog.Bool("grader_fallback", fallback),
	)

	return &EvaluationResult{
		AttemptID:     attempt.ID,
		AttemptNumber: attempt.AttemptNumber,
		Score:         verdict.Score,
		Status:        status,
		Feedback:      verdict.Feedback,
		Highlights:    verdict.Highlights,
		Suggestions:   verdict.Suggestions,
		Fallback:      fallback,
		Card:          updated,
	}, nil
}

// resolveRole picks the grading audience: the explicit request value wins,
// then the note's default, then the built-in default.
func (s *Service) resolveRole(ctx context.Context, userID, noteID uuid.UUID, requested *string) (string, error) {
	if requested != nil && *requested != "" {
		return *requested, nil
	}

	note, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return "", fmt.Errorf("get note: %w", err)
	}
	if note.DefaultRole != nil && *note.DefaultRole != "" {
		return *note.DefaultRole, nil
	}
	return defaultRole, nil
}

// gradeWithFallback calls the grader under the configured timeout and
// substitutes the deterministic fallback verdict on any failure. The second
// return value reports whether the fallback was used.
func (s *Service) gradeWithFallback(ctx context.Context, term, role, explanation string) (domain.GradeResult, bool) {
	gradeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	verdict, err := s.grader.Grade(gradeCtx, term, role, explanation)
	if err == nil {
		return verdict, false
	}

	s.log.WarnContext(ctx, "grader unavailable, using fallback verdict",
		slog.Bool("grader_fallback", true),
		slog.String("term", term),
		slog.Any("error", err),
	)
	return fallbackVerdict(), true
}

func fallbackVerdict() domain.GradeResult {
	verdict := domain.GradeResult{
		Score:       fallbackScore,
		Feedback:    fallbackFeedback,
		Highlights:  []string{"Explained the concept in your own words"},
		Suggestions: []string{"Try to describe the core idea in more detail"},
	}

	raw, err := json.Marshal(map[string]any{
		"score":       verdict.Score,
		"feedback":    verdict.Feedback,
		"highlights":  verdict.Highlights,
		"suggestions": verdict.Suggestions,
	})
	if err == nil {
		verdict.Raw = raw
	}
	return verdict
}

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		id, "testuser-"+uniqueSuffix(), now, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return id
}

// SeedNote creates a note for the given user. Returns a filled domain.Note.
func SeedNote(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Note {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	note := domain.Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Note " + uniqueSuffix(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notes (id, user_id, title, default_role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, note.UserID, note.Title, note.DefaultRole, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert note: %v", err)
	}

	return note
}

// SeedCard creates a flash card in the given status under a note.
// last_reviewed_at and mastered_at stay NULL; use SeedReviewedCard for
// cards with review history.
func SeedCard(t *testing.T, pool *pgxpool.Pool, noteID uuid.UUID, term string, status domain.CardStatus) domain.Card {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	card := domain.Card{
		ID:        uuid.New(),
		NoteID:    noteID,
		Term:      term,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO flash_cards (id, note_id, term, status, review_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 0, $5, $6)`,
		card.ID, card.NoteID, card.Term, storeStatus(status), card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCard insert flash_card: %v", err)
	}

	return card
}

// SeedReviewedCard creates a flash card with review history fields populated.
func SeedReviewedCard(t *testing.T, pool *pgxpool.Pool, noteID uuid.UUID, term string, status domain.CardStatus, reviewCount int, lastReviewedAt time.Time) domain.Card {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	reviewed := lastReviewedAt.UTC().Truncate(time.Microsecond)
	card := domain.Card{
		ID:             uuid.New(),
		NoteID:         noteID,
		Term:           term,
		Status:         status,
		ReviewCount:    reviewCount,
		LastReviewedAt: &reviewed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if status == domain.CardStatusMastered {
		card.MasteredAt = &reviewed
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO flash_cards (id, note_id, term, status, review_count, last_reviewed_at, mastered_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		card.ID, card.NoteID, card.Term, storeStatus(status), card.ReviewCount,
		card.LastReviewedAt, card.MasteredAt, card.CreatedAt, card.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewedCard insert flash_card: %v", err)
	}

	return card
}

// SeedAttempt creates a learning attempt row for a card.
func SeedAttempt(t *testing.T, pool *pgxpool.Pool, card domain.Card, attemptNumber, score int, attemptedAt time.Time) domain.Attempt {
	t.Helper()
	ctx := context.Background()

	status, err := domain.StatusForScore(score)
	if err != nil {
		t.Fatalf("testhelper: SeedAttempt invalid score %d: %v", score, err)
	}

	attempt := domain.Attempt{
		ID:            uuid.New(),
		CardID:        card.ID,
		NoteID:        card.NoteID,
		Role:          "student",
		Explanation:   "Explanation " + uniqueSuffix(),
		Score:         score,
		Status:        status,
		Feedback:      []byte(`{"feedback":"seeded"}`),
		AttemptNumber: attemptNumber,
		AttemptedAt:   attemptedAt.UTC().Truncate(time.Microsecond),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO learning_attempts (id, card_id, note_id, selected_role, explanation, score, status, feedback, attempt_number, attempted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		attempt.ID, attempt.CardID, attempt.NoteID, attempt.Role, attempt.Explanation,
		attempt.Score, storeStatus(attempt.Status), attempt.Feedback, attempt.AttemptNumber, attempt.AttemptedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAttempt insert learning_attempt: %v", err)
	}

	return attempt
}

// storeStatus lowercases a CardStatus the way the repos store it.
func storeStatus(s domain.CardStatus) string {
	switch s {
	case domain.CardStatusNotStarted:
		return "not_started"
	case domain.CardStatusNotMastered:
		return "not_mastered"
	case domain.CardStatusNeedsImprove:
		return "needs_improve"
	case domain.CardStatusNeedsReview:
		return "needs_review"
	case domain.CardStatusMastered:
		return "mastered"
	default:
		return string(s)
	}
}

package attempt_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/attempt"
	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

func TestRepo_Create_DuplicateAttemptNumberIsConflict(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := attempt.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	note := testhelper.SeedNote(t, pool, userID)
	card := testhelper.SeedCard(t, pool, note.ID, "entropy", domain.CardStatusNotStarted)

	a := &domain.Attempt{
		ID:            uuid.New(),
		CardID:        card.ID,
		NoteID:        card.NoteID,
		Role:          "student",
		Explanation:   "entropy measures disorder",
		Score:         75,
		Status:        domain.CardStatusNeedsReview,
		Feedback:      []byte(`{"feedback":"good"}`),
		AttemptNumber: 1,
		AttemptedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := *a
	dup.ID = uuid.New()
	err := repo.Create(ctx, &dup)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate attempt_number: got %v, want ErrConflict", err)
	}
}

func TestRepo_Create_UnknownCardIsNotFound(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := attempt.New(pool)
	ctx := context.Background()

	a := &domain.Attempt{
		ID:            uuid.New(),
		CardID:        uuid.New(),
		NoteID:        uuid.New(),
		Role:          "student",
		Explanation:   "orphan",
		Score:         50,
		Status:        domain.CardStatusNeedsImprove,
		AttemptNumber: 1,
		AttemptedAt:   time.Now().UTC(),
	}

	err := repo.Create(ctx, a)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown card: got %v, want ErrNotFound", err)
	}
}

func TestRepo_ListByCard(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := attempt.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	note := testhelper.SeedNote(t, pool, userID)
	card := testhelper.SeedCard(t, pool, note.ID, "photosynthesis", domain.CardStatusNotStarted)

	now := time.Now().UTC()
	testhelper.SeedAttempt(t, pool, card, 1, 40, now.Add(-2*time.Hour))
	testhelper.SeedAttempt(t, pool, card, 2, 80, now.Add(-time.Hour))
	testhelper.SeedAttempt(t, pool, card, 3, 95, now)

	attempts, err := repo.ListByCard(ctx, userID, card.ID, 10)
	if err != nil {
		t.Fatalf("list by card: %v", err)
	}
	if len(attempts) != 3 {
		t.Fatalf("len(attempts) = %d, want 3", len(attempts))
	}
	// Newest first.
	if attempts[0].AttemptNumber != 3 || attempts[2].AttemptNumber != 1 {
		t.Errorf("unexpected order: %d, %d, %d",
			attempts[0].AttemptNumber, attempts[1].AttemptNumber, attempts[2].AttemptNumber)
	}
	if attempts[0].Status != domain.CardStatusMastered {
		t.Errorf("attempts[0].Status = %s, want MASTERED", attempts[0].Status)
	}

	// Owner scoping.
	foreign, err := repo.ListByCard(ctx, stranger, card.ID, 10)
	if err != nil {
		t.Fatalf("stranger list: %v", err)
	}
	if len(foreign) != 0 {
		t.Errorf("stranger sees %d attempts, want 0", len(foreign))
	}
}

func TestRepo_CountSince(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := attempt.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	note := testhelper.SeedNote(t, pool, userID)
	card := testhelper.SeedCard(t, pool, note.ID, "valence", domain.CardStatusNotStarted)

	now := time.Now().UTC().Truncate(time.Microsecond)
	testhelper.SeedAttempt(t, pool, card, 1, 60, now.Add(-72*time.Hour))
	testhelper.SeedAttempt(t, pool, card, 2, 70, now.Add(-time.Hour))
	testhelper.SeedAttempt(t, pool, card, 3, 80, now)

	count, err := repo.CountSince(ctx, userID, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("count since: %v", err)
	}
	if count != 2 {
		t.Errorf("CountSince = %d, want 2", count)
	}
}

func TestRepo_DailyCounts_GroupsByLocalDay(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := attempt.New(pool)
	ctx := context.Background()

	userID := testhelper.SeedUser(t, pool)
	note := testhelper.SeedNote(t, pool, userID)
	card := testhelper.SeedCard(t, pool, note.ID, "tide", domain.CardStatusNotStarted)

	// 23:30 UTC on June 1st is already June 2nd in Berlin (UTC+2 in summer).
	lateUTC := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	testhelper.SeedAttempt(t, pool, card, 1, 60, lateUTC)
	testhelper.SeedAttempt(t, pool, card, 2, 70, lateUTC.Add(time.Hour))

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	utcCounts, err := repo.DailyCounts(ctx, userID, from, "UTC")
	if err != nil {
		t.Fatalf("daily counts utc: %v", err)
	}
	if len(utcCounts) != 2 {
		t.Fatalf("utc days = %d, want 2 (attempts straddle UTC midnight): %+v", len(utcCounts), utcCounts)
	}

	berlinCounts, err := repo.DailyCounts(ctx, userID, from, "Europe/Berlin")
	if err != nil {
		t.Fatalf("daily counts berlin: %v", err)
	}
	if len(berlinCounts) != 1 {
		t.Fatalf("berlin days = %d, want 1 (both attempts on June 2 local): %+v", len(berlinCounts), berlinCounts)
	}
	if berlinCounts[0].Count != 2 {
		t.Errorf("berlin count = %d, want 2", berlinCounts[0].Count)
	}
	if d := berlinCounts[0].Date; d.Day() != 2 || d.Month() != time.June {
		t.Errorf("berlin date = %v, want June 2", d)
	}
}

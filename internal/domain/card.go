package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card is one term tracked for mastery, owned by a Note.
//
// Invariants:
//   - ReviewCount equals the number of Attempt records for the card.
//   - MasteredAt is set the instant Status first becomes MASTERED and, by
//     default, survives later regressions.
type Card struct {
	ID             uuid.UUID
	NoteID         uuid.UUID
	Term           string
	Status         CardStatus
	ReviewCount    int
	LastReviewedAt *time.Time
	MasteredAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDue reports whether the card needs review at the given time.
// A card that has never been reviewed is always due; otherwise the card is
// due once its status interval has fully elapsed (the exact boundary instant
// counts as due).
func (c *Card) IsDue(now time.Time) bool {
	if c.LastReviewedAt == nil {
		return true
	}
	return !c.LastReviewedAt.Add(ReviewInterval(c.Status)).After(now)
}

// Review intervals per resulting status. The next interval depends only on
// the status an attempt lands the card in, never on the prior status or the
// attempt count.
const (
	intervalNotMastered  = 4 * time.Hour
	intervalNeedsImprove = 72 * time.Hour
	intervalNeedsReview  = 24 * time.Hour
	intervalMastered     = 7 * 24 * time.Hour
)

// ReviewInterval returns the time a card in the given status waits before it
// is due again.
func ReviewInterval(s CardStatus) time.Duration {
	switch s {
	case CardStatusNeedsImprove:
		return intervalNeedsImprove
	case CardStatusNeedsReview:
		return intervalNeedsReview
	case CardStatusMastered:
		return intervalMastered
	default:
		// NOT_STARTED and NOT_MASTERED share the shortest interval.
		return intervalNotMastered
	}
}

// StatusForScore maps a grading score to the resulting card status.
// The ranges are closed and inclusive: 90–100 MASTERED, 70–89 NEEDS_REVIEW,
// 50–69 NEEDS_IMPROVE, 0–49 NOT_MASTERED.
func StatusForScore(score int) (CardStatus, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("score %d: %w", score, ErrInvalidScore)
	}
	switch {
	case score >= 90:
		return CardStatusMastered, nil
	case score >= 70:
		return CardStatusNeedsReview, nil
	case score >= 50:
		return CardStatusNeedsImprove, nil
	default:
		return CardStatusNotMastered, nil
	}
}

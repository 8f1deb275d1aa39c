package postgres

import (
	"fmt"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// The store keeps status values in their historical lowercase form; the
// domain works with the uppercase enum only. Repos translate at this edge.

var statusToStore = map[domain.CardStatus]string{
	domain.CardStatusNotStarted:   "not_started",
	domain.CardStatusNotMastered:  "not_mastered",
	domain.CardStatusNeedsImprove: "needs_improve",
	domain.CardStatusNeedsReview:  "needs_review",
	domain.CardStatusMastered:     "mastered",
}

var statusFromStore = map[string]domain.CardStatus{
	"not_started":   domain.CardStatusNotStarted,
	"not_mastered":  domain.CardStatusNotMastered,
	"needs_improve": domain.CardStatusNeedsImprove,
	"needs_review":  domain.CardStatusNeedsReview,
	"mastered":      domain.CardStatusMastered,
}

// StoreStatus converts a domain status to its storage form.
func StoreStatus(s domain.CardStatus) string {
	if v, ok := statusToStore[s]; ok {
		return v
	}
	return string(s)
}

// ParseStatus converts a storage value back to the domain enum.
// An unknown value means the row predates the current enum or was written
// past the CHECK constraint; surface it rather than guessing.
func ParseStatus(raw string) (domain.CardStatus, error) {
	if s, ok := statusFromStore[raw]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown stored card status %q: %w", raw, domain.ErrValidation)
}

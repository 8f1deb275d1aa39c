package learning

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// EvaluationResult is the outcome of one graded self-explanation, combining
// the grader's verdict with the card's post-transition state.
type EvaluationResult struct {
	AttemptID     uuid.UUID
	AttemptNumber int
	Score         int
	Status        domain.CardStatus
	Feedback      string
	Highlights    []string
	Suggestions   []string
	Fallback      bool
	Card          domain.Card
}

// IngestResult reports a card merge: every card attached to the note after
// the merge, plus how many of them were created by this call.
type IngestResult struct {
	Cards   []domain.Card
	Created int
}

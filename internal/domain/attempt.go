package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Attempt is an immutable, append-only record of one graded
// self-explanation. NoteID is denormalized for query convenience.
//
// Invariant: AttemptNumber for a new Attempt equals the card's ReviewCount+1
// at the moment of creation; the pair (CardID, AttemptNumber) is unique.
type Attempt struct {
	ID            uuid.UUID
	CardID        uuid.UUID
	NoteID        uuid.UUID
	Role          string
	Explanation   string
	Score         int
	Status        CardStatus
	Feedback      json.RawMessage
	AttemptNumber int
	AttemptedAt   time.Time
}

// GradeResult is what the external grading collaborator returns for one
// explanation. Raw carries the grader's full payload; the core stores it
// opaquely on the Attempt.
type GradeResult struct {
	Score       int
	Feedback    string
	Highlights  []string
	Suggestions []string
	Raw         json.RawMessage
}

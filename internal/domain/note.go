package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note is a container of learning material. It is created by content
// ingestion and is read-only context for the learning core; DefaultRole is
// the grading-persona hint used when an evaluation does not name one.
type Note struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	DefaultRole *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

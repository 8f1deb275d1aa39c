package learning

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// NoteProgress returns the per-status card counts for one note.
func (s *Service) NoteProgress(ctx context.Context, noteID uuid.UUID) (domain.StatusCounts, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.StatusCounts{}, domain.ErrUnauthorized
	}
	if noteID == uuid.Nil {
		return domain.StatusCounts{}, domain.NewValidationError("note_id", "required")
	}

	// Resolve the note first so an unknown or foreign id is a 404, not an
	// empty progress report.
	note, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return domain.StatusCounts{}, fmt.Errorf("get note: %w", err)
	}

	rows, err := s.cards.CountByStatusForNote(ctx, userID, note.ID)
	if err != nil {
		return domain.StatusCounts{}, fmt.Errorf("count by status: %w", err)
	}

	var counts domain.StatusCounts
	for _, row := range rows {
		counts.Add(row.Status, row.Count)
	}
	return counts, nil
}

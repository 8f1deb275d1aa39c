package learning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// IngestCards merges a list of terms into the note's card set. The merge is
// idempotent: a term that already has a card is skipped and the existing
// card keeps its status and history. Returns the note's full card list.
func (s *Service) IngestCards(ctx context.Context, input IngestCardsInput) (*IngestResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Ownership check before touching cards.
	note, err := s.notes.GetByID(ctx, userID, input.NoteID)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}

	terms := normalizeTerms(input.Terms)
	if len(terms) == 0 {
		return nil, domain.NewValidationError("terms", "terms must be non-empty")
	}

	created, err := s.cards.MergeTerms(ctx, note.ID, terms)
	if err != nil {
		return nil, fmt.Errorf("merge terms: %w", err)
	}

	cards, err := s.cards.ListByNote(ctx, userID, note.ID)
	if err != nil {
		return nil, fmt.Errorf("list note cards: %w", err)
	}

	s.log.InfoContext(ctx, "cards ingested",
		slog.String("note_id", note.ID.String()),
		slog.Int("terms", len(terms)),
		slog.Int("created", created),
		slog.Int("total", len(cards)),
	)

	return &IngestResult{Cards: cards, Created: created}, nil
}

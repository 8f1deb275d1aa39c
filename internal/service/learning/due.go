package learning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// ListDue returns the user's review queue: every card whose interval has
// elapsed, weakest statuses first. A zero limit means the configured
// default; anything above the configured maximum is clamped down.
func (s *Service) ListDue(ctx context.Context, input ListDueInput) ([]domain.Card, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.cfg.DueLimitDefault
	}
	if limit > s.cfg.DueLimitMax {
		limit = s.cfg.DueLimitMax
	}

	now := s.clock.Now().UTC()

	cards, err := s.cards.ListDue(ctx, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}

	s.log.DebugContext(ctx, "due queue loaded",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)),
	)

	return cards, nil
}

// ListAttempts returns a card's most recent attempts, newest first.
func (s *Service) ListAttempts(ctx context.Context, input ListAttemptsInput) ([]domain.Attempt, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultAttemptsLimit
	}

	// Ownership is enforced by the repo's join against the owning note.
	attempts, err := s.attempts.ListByCard(ctx, userID, input.CardID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	return attempts, nil
}

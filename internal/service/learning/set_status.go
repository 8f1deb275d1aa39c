package learning

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// SetStatus applies a manual status override. It follows the same
// last_reviewed_at and mastered_at rules as a graded transition but never
// touches review_count, since no attempt happened. NOT_STARTED is not a
// valid target: a card never returns to its birth state.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (domain.Card, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Card{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.Card{}, err
	}

	c, err := s.cards.GetByID(ctx, userID, input.CardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("get card: %w", err)
	}

	now := s.clock.Now().UTC()

	params := card.StatusUpdateParams{
		Status:         input.Status,
		LastReviewedAt: now,
	}
	if input.Status == domain.CardStatusMastered && c.MasteredAt == nil {
		params.SetMasteredAt = &now
	}
	if c.Status == domain.CardStatusMastered && input.Status != domain.CardStatusMastered && s.cfg.ClearMasteredOnRegress {
		params.ClearMasteredAt = true
	}

	if err := s.cards.UpdateStatus(ctx, userID, c.ID, params); err != nil {
		return domain.Card{}, fmt.Errorf("update status: %w", err)
	}

	updated, err := s.cards.GetByID(ctx, userID, c.ID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("reload card: %w", err)
	}

	s.log.InfoContext(ctx, "card status overridden",
		slog.String("card_id", c.ID.String()),
		slog.String("from", c.Status.String()),
		slog.String("to", input.Status.String()),
	)

	return updated, nil
}

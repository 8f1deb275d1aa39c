// Package stats aggregates learning statistics: status counters, the review
// backlog, study streaks and weekly progress.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/feynman-backend/internal/config"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// cardRepo defines the card counters the aggregator needs.
type cardRepo interface {
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) ([]card.StatusCount, error)
}

// attemptRepo defines the attempt counters the aggregator needs.
type attemptRepo interface {
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	DailyCounts(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]domain.DayAttemptCount, error)
}

// Service implements the statistics use cases. All day arithmetic happens in
// the configured reference timezone.
type Service struct {
	cards    cardRepo
	attempts attemptRepo
	clock    clockwork.Clock
	log      *slog.Logger
	cfg      config.StatsConfig
	loc      *time.Location
}

// NewService creates a new Stats service. The configured timezone is parsed
// once; an invalid name falls back to UTC (config validation rejects it
// earlier in normal operation).
func NewService(
	log *slog.Logger,
	cards cardRepo,
	attempts attemptRepo,
	clock clockwork.Clock,
	cfg config.StatsConfig,
) *Service {
	return &Service{
		cards:    cards,
		attempts: attempts,
		clock:    clock,
		log:      log.With("service", "stats"),
		cfg:      cfg,
		loc:      ParseTimezone(cfg.Timezone),
	}
}

package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/feynman-backend/internal/domain"
	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// GetStatistics returns the aggregated dashboard view for the user. A user
// with no cards or attempts gets zero values, never an error.
func (s *Service) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Statistics{}, domain.ErrUnauthorized
	}

	now := s.clock.Now().UTC()
	local := now.In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	var counts domain.StatusCounts
	rows, err := s.cards.CountByStatus(ctx, userID)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("count by status: %w", err)
	}
	for _, row := range rows {
		counts.Add(row.Status, row.Count)
	}

	dueCount, err := s.cards.CountDue(ctx, userID, now)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("count due: %w", err)
	}

	// One lookback query feeds both the streak and the trend; the streak
	// window is the longer of the two.
	lookback := s.cfg.StreakLookbackDays
	if s.cfg.TrendDays > lookback {
		lookback = s.cfg.TrendDays
	}
	from := today.AddDate(0, 0, -(lookback - 1)).UTC()

	days, err := s.attempts.DailyCounts(ctx, userID, from, s.cfg.Timezone)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("daily counts: %w", err)
	}

	streak := calculateStreak(days, today)
	trend := buildTrend(days, today, s.cfg.TrendDays)

	activeDays := 0
	for _, d := range trend {
		if d.Count > 0 {
			activeDays++
		}
	}

	weekStart := MostRecentMonday(now, s.loc)
	weekCompleted, err := s.attempts.CountSince(ctx, userID, weekStart)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("count week attempts: %w", err)
	}

	s.log.DebugContext(ctx, "statistics aggregated",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", dueCount),
		slog.Int("streak", streak),
		slog.Int("week_completed", weekCompleted),
	)

	return domain.Statistics{
		StatusCounts:  counts,
		DueCount:      dueCount,
		Streak:        streak,
		Trend7d:       trend,
		ActiveDays7d:  activeDays,
		WeekCompleted: weekCompleted,
		WeekTarget:    s.cfg.WeekTarget,
	}, nil
}

// buildTrend zero-fills the last n local days, oldest first. days carries
// only dates that actually had attempts.
func buildTrend(days []domain.DayAttemptCount, today time.Time, n int) []domain.DayAttemptCount {
	type dayKey struct {
		y int
		m time.Month
		d int
	}
	counts := make(map[dayKey]int, len(days))
	for _, d := range days {
		counts[dayKey{d.Date.Year(), d.Date.Month(), d.Date.Day()}] = d.Count
	}

	trend := make([]domain.DayAttemptCount, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		trend = append(trend, domain.DayAttemptCount{
			Date:  date,
			Count: counts[dayKey{date.Year(), date.Month(), date.Day()}],
		})
	}
	return trend
}

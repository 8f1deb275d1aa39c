package stats

import (
	"time"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// calculateStreak counts consecutive local days with at least one attempt,
// walking backwards from today. A streak broken yesterday still counts the
// run that ended then: if today has no attempts yet, the walk starts at
// yesterday. days must be sorted newest first.
func calculateStreak(days []domain.DayAttemptCount, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	}

	expected := today
	if !sameDay(days[0].Date, today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if !sameDay(d.Date, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

package stats

import "time"

// DayStart returns the start of the given instant's day in the reference
// timezone, converted to UTC.
func DayStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
	return dayStart.UTC()
}

// MostRecentMonday returns Monday 00:00 of the current week in the reference
// timezone, converted to UTC. On a Monday it returns today's own start.
func MostRecentMonday(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	// Weekday() has Sunday=0; shift so Monday=0.
	back := (int(local.Weekday()) + 6) % 7
	monday := local.AddDate(0, 0, -back)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, tz).UTC()
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

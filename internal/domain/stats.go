package domain

import "time"

// StatusCounts holds the count of cards per status.
type StatusCounts struct {
	NotStarted   int
	NotMastered  int
	NeedsImprove int
	NeedsReview  int
	Mastered     int
	Total        int
}

// Add increments the counter for the given status (and the total).
func (c *StatusCounts) Add(s CardStatus, n int) {
	switch s {
	case CardStatusNotStarted:
		c.NotStarted += n
	case CardStatusNotMastered:
		c.NotMastered += n
	case CardStatusNeedsImprove:
		c.NeedsImprove += n
	case CardStatusNeedsReview:
		c.NeedsReview += n
	case CardStatusMastered:
		c.Mastered += n
	default:
		return
	}
	c.Total += n
}

// DayAttemptCount holds the attempt count for one calendar date in the
// reference timezone.
type DayAttemptCount struct {
	Date  time.Time
	Count int
}

// Statistics is the aggregated dashboard view for one owner.
type Statistics struct {
	StatusCounts  StatusCounts
	DueCount      int
	Streak        int
	Trend7d       []DayAttemptCount
	ActiveDays7d  int
	WeekCompleted int
	WeekTarget    int
}

package domain

// CardStatus represents the mastery state of a flash card.
//
// NOT_STARTED is only ever the initial value; once a card has at least one
// attempt it never returns to NOT_STARTED.
type CardStatus string

const (
	CardStatusNotStarted   CardStatus = "NOT_STARTED"
	CardStatusNotMastered  CardStatus = "NOT_MASTERED"
	CardStatusNeedsImprove CardStatus = "NEEDS_IMPROVE"
	CardStatusNeedsReview  CardStatus = "NEEDS_REVIEW"
	CardStatusMastered     CardStatus = "MASTERED"
)

func (s CardStatus) String() string { return string(s) }

func (s CardStatus) IsValid() bool {
	switch s {
	case CardStatusNotStarted, CardStatusNotMastered, CardStatusNeedsImprove,
		CardStatusNeedsReview, CardStatusMastered:
		return true
	}
	return false
}

// AllCardStatuses lists every status in mastery order (weakest first,
// NOT_STARTED last). Used for iteration in counters and tests.
func AllCardStatuses() []CardStatus {
	return []CardStatus{
		CardStatusNotMastered,
		CardStatusNeedsImprove,
		CardStatusNeedsReview,
		CardStatusMastered,
		CardStatusNotStarted,
	}
}

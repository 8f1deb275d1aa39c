package learning

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/domain"
)

const (
	maxExplanationLen = 10_000
	maxRoleLen        = 100
	maxTermLen        = 200
)

// EvaluateInput holds the parameters for evaluating a self-explanation.
type EvaluateInput struct {
	CardID      uuid.UUID
	NoteID      uuid.UUID
	Explanation string
	Role        *string
}

// Validate checks all fields and collects all errors.
func (i *EvaluateInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "note_id", Message: "required"})
	}
	if strings.TrimSpace(i.Explanation) == "" {
		errs = append(errs, domain.FieldError{Field: "explanation", Message: "required"})
	}
	if len(i.Explanation) > maxExplanationLen {
		errs = append(errs, domain.FieldError{Field: "explanation", Message: "max 10000 characters"})
	}
	if i.Role != nil && len(*i.Role) > maxRoleLen {
		errs = append(errs, domain.FieldError{Field: "role", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListDueInput holds the parameters for fetching the review queue.
type ListDueInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *ListDueInput) Validate() error {
	if i.Limit < 0 {
		return domain.NewValidationError("limit", "must be non-negative")
	}
	return nil
}

const defaultAttemptsLimit = 20

// ListAttemptsInput holds the parameters for fetching a card's attempt
// history.
type ListAttemptsInput struct {
	CardID uuid.UUID
	Limit  int
}

// Validate checks all fields and collects all errors.
func (i *ListAttemptsInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > 100 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SetStatusInput holds the parameters for a manual status override.
type SetStatusInput struct {
	CardID uuid.UUID
	Status domain.CardStatus
}

// Validate checks all fields and collects all errors.
func (i *SetStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.CardID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	} else if i.Status == domain.CardStatusNotStarted {
		// NOT_STARTED is the birth state only; overrides cannot recreate it.
		errs = append(errs, domain.FieldError{Field: "status", Message: "cannot reset a card to NOT_STARTED"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// IngestCardsInput holds the parameters for merging extracted terms into a
// note's card set.
type IngestCardsInput struct {
	NoteID uuid.UUID
	Terms  []string
}

// Validate checks all fields and collects all errors.
func (i *IngestCardsInput) Validate() error {
	var errs []domain.FieldError

	if i.NoteID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "note_id", Message: "required"})
	}
	if len(i.Terms) == 0 {
		errs = append(errs, domain.FieldError{Field: "terms", Message: "required"})
	}
	for _, t := range i.Terms {
		if strings.TrimSpace(t) == "" {
			errs = append(errs, domain.FieldError{Field: "terms", Message: "terms must be non-empty"})
			break
		}
		if len(t) > maxTermLen {
			errs = append(errs, domain.FieldError{Field: "terms", Message: "max 200 characters per term"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// normalizeTerms trims whitespace and drops case-sensitive duplicates while
// preserving the order terms arrived in.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Package learning implements the card-mastery core: graded evaluations,
// the review queue, manual status overrides, and card ingestion.
package learning

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

// cardRepo defines the card persistence operations the service needs.
type cardRepo interface {
	GetByID(ctx context.Context, userID, cardID uuid.UUID) (domain.Card, error)
	ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Card, error)
	ListByNote(ctx context.Context, userID, noteID uuid.UUID) ([]domain.Card, error)
	CountByStatusForNote(ctx context.Context, userID, noteID uuid.UUID) ([]card.StatusCount, error)
	MergeTerms(ctx context.Context, noteID uuid.UUID, terms []string) (int, error)
	UpdateReview(ctx context.Context, userID, cardID uuid.UUID, params card.ReviewUpdateParams) error
	UpdateStatus(ctx context.Context, userID, cardID uuid.UUID, params card.StatusUpdateParams) error
}

// attemptRepo defines the attempt persistence operations the service needs.
type attemptRepo interface {
	Create(ctx context.Context, a *domain.Attempt) error
	ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]domain.Attempt, error)
}

// noteRepo resolves notes for ownership checks and default grading roles.
type noteRepo interface {
	GetByID(ctx context.Context, userID, noteID uuid.UUID) (domain.Note, error)
}

// grader scores one self-explanation against a term for a target audience.
type grader interface {
	Grade(ctx context.Context, term, role, explanation string) (domain.GradeResult, error)
}

// txManager defines transaction management.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the learning use cases.
type Service struct {
	cards    cardRepo
	attempts attemptRepo
	notes    noteRepo
	grader   grader
	tx       txManager
	clock    clockwork.Clock
	log      *slog.Logger
	cfg      config.LearningConfig
	timeout  time.Duration
}

// NewService creates a new Learning service. The grader timeout bounds every
// evaluation call independently of the caller's deadline.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	attempts attemptRepo,
	notes noteRepo,
	grader grader,
	tx txManager,
	clock clockwork.Clock,
	cfg config.LearningConfig,
	graderTimeout time.Duration,
) *Service {
	return &Service{
		cards:    cards,
		attempts: attempts,
		notes:    notes,
		grader:   grader,
		tx:       tx,
		clock:    clock,
		log:      log.With("service", "learning"),
		cfg:      cfg,
		timeout:  graderTimeout,
	}
}

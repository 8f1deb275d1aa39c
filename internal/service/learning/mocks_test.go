package learning

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/internal/adapter/postgres/card"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

var (
	_ cardRepo    = &cardRepoMock{}
	_ attemptRepo = &attemptRepoMock{}
	_ noteRepo    = &noteRepoMock{}
	_ grader      = &graderMock{}
	_ txManager   = &txManagerMock{}
)

type cardRepoMock struct {
	GetByIDFunc              func(ctx context.Context, userID, cardID uuid.UUID) (domain.Card, error)
	ListDueFunc              func(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Card, error)
	ListByNoteFunc           func(ctx context.Context, userID, noteID uuid.UUID) ([]domain.Card, error)
	CountByStatusForNoteFunc func(ctx context.Context, userID, noteID uuid.UUID) ([]card.StatusCount, error)
	MergeTermsFunc           func(ctx context.Context, noteID uuid.UUID, terms []string) (int, error)
	UpdateReviewFunc         func(ctx context.Context, userID, cardID uuid.UUID, params card.ReviewUpdateParams) error
	UpdateStatusFunc         func(ctx context.Context, userID, cardID uuid.UUID, params card.StatusUpdateParams) error
}

func (m *cardRepoMock) GetByID(ctx context.Context, userID, cardID uuid.UUID) (domain.Card, error) {
	if m.GetByIDFunc == nil {
		panic("cardRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, userID, cardID)
}

func (m *cardRepoMock) ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Card, error) {
	if m.ListDueFunc == nil {
		panic("cardRepoMock.ListDueFunc is nil")
	}
	return m.ListDueFunc(ctx, userID, now, limit)
}

func (m *cardRepoMock) ListByNote(ctx context.Context, userID, noteID uuid.UUID) ([]domain.Card, error) {
	if m.ListByNoteFunc == nil {
		panic("cardRepoMock.ListByNoteFunc is nil")
	}
	return m.ListByNoteFunc(ctx, userID, noteID)
}

func (m *cardRepoMock) CountByStatusForNote(ctx context.Context, userID, noteID uuid.UUID) ([]card.StatusCount, error) {
	if m.CountByStatusForNoteFunc == nil {
		panic("cardRepoMock.CountByStatusForNoteFunc is nil")
	}
	return m.CountByStatusForNoteFunc(ctx, userID, noteID)
}

func (m *cardRepoMock) MergeTerms(ctx context.Context, noteID uuid.UUID, terms []string) (int, error) {
	if m.MergeTermsFunc == nil {
		panic("cardRepoMock.MergeTermsFunc is nil")
	}
	return m.MergeTermsFunc(ctx, noteID, terms)
}

func (m *cardRepoMock) UpdateReview(ctx context.Context, userID, cardID uuid.UUID, params card.ReviewUpdateParams) error {
	if m.UpdateReviewFunc == nil {
		panic("cardRepoMock.UpdateReviewFunc is nil")
	}
	return m.UpdateReviewFunc(ctx, userID, cardID, params)
}

func (m *cardRepoMock) UpdateStatus(ctx context.Context, userID, cardID uuid.UUID, params card.StatusUpdateParams) error {
	if m.UpdateStatusFunc == nil {
		panic("cardRepoMock.UpdateStatusFunc is nil")
	}
	return m.UpdateStatusFunc(ctx, userID, cardID, params)
}

type attemptRepoMock struct {
	CreateFunc     func(ctx context.Context, a *domain.Attempt) error
	ListByCardFunc func(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]domain.Attempt, error)
}

func (m *attemptRepoMock) Create(ctx context.Context, a *domain.Attempt) error {
	if m.CreateFunc == nil {
		panic("attemptRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, a)
}

func (m *attemptRepoMock) ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]domain.Attempt, error) {
	if m.ListByCardFunc == nil {
		panic("attemptRepoMock.ListByCardFunc is nil")
	}
	return m.ListByCardFunc(ctx, userID, cardID, limit)
}

type noteRepoMock struct {
	GetByIDFunc func(ctx context.Context, userID, noteID uuid.UUID) (domain.Note, error)
}

func (m *noteRepoMock) GetByID(ctx context.Context, userID, noteID uuid.UUID) (domain.Note, error) {
	if m.GetByIDFunc == nil {
		panic("noteRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, userID, noteID)
}

type graderMock struct {
	GradeFunc func(ctx context.Context, term, role, explanation string) (domain.GradeResult, error)
}

func (m *graderMock) Grade(ctx context.Context, term, role, explanation string) (domain.GradeResult, error) {
	if m.GradeFunc == nil {
		panic("graderMock.GradeFunc is nil")
	}
	return m.GradeFunc(ctx, term, role, explanation)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		// Default passthrough keeps most tests free of boilerplate.
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}

// Package card implements the flash-card repository using PostgreSQL.
// Simple lookups use raw SQL constants; the batch term merge is built
// with squirrel.
package card

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/feynman-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// ReviewUpdateParams holds the fields written by a graded transition.
// ExpectedReviewCount is an optimistic guard: the update only applies when
// the stored review_count still matches, and a mismatch surfaces
// domain.ErrConflict.
type ReviewUpdateParams struct {
	Status              domain.CardStatus
	LastReviewedAt      time.Time
	SetMasteredAt       *time.Time
	ClearMasteredAt     bool
	ExpectedReviewCount int
}

// StatusUpdateParams holds the fields written by a manual status override.
// review_count is never touched here.
type StatusUpdateParams struct {
	Status          domain.CardStatus
	LastReviewedAt  time.Time
	SetMasteredAt   *time.Time
	ClearMasteredAt bool
}

// StatusCount holds a card status and its count.
type StatusCount struct {
	Status domain.CardStatus
	Count  int
}

// Repo provides flash-card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new flash-card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const cardColumns = `c.id, c.note_id, c.term, c.status, c.review_count,
       c.last_reviewed_at, c.mastered_at, c.created_at, c.updated_at`

const getByIDSQL = `
SELECT ` + cardColumns + `
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE c.id = $1 AND n.user_id = $2`

// dueFilterSQL mirrors the per-status review intervals. A card with no
// review history is always due.
const dueFilterSQL = `
  (c.last_reviewed_at IS NULL
   OR (c.status IN ('not_started', 'not_mastered') AND c.last_reviewed_at + interval '4 hours' <= $2)
   OR (c.status = 'needs_review' AND c.last_reviewed_at + interval '1 day' <= $2)
   OR (c.status = 'needs_improve' AND c.last_reviewed_at + interval '3 days' <= $2)
   OR (c.status = 'mastered' AND c.last_reviewed_at + interval '7 days' <= $2))`

// dueOrderSQL ranks weak statuses first and pushes never-studied cards to
// the back of the queue; last_reviewed_at NULLS FIRST within a rank and the
// id tiebreak keep the order reproducible.
const dueOrderSQL = `
ORDER BY
  CASE c.status
    WHEN 'not_mastered' THEN 0
    WHEN 'needs_improve' THEN 1
    WHEN 'needs_review' THEN 2
    WHEN 'mastered' THEN 3
    ELSE 4
  END,
  c.last_reviewed_at ASC NULLS FIRST,
  c.id ASC`

const listDueSQL = `
SELECT ` + cardColumns + `
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND` + dueFilterSQL + dueOrderSQL + `
LIMIT $3`

const countDueSQL = `
SELECT count(*)
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND` + dueFilterSQL

const countByStatusSQL = `
SELECT c.status, count(*)
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1
GROUP BY c.status`

const countByStatusForNoteSQL = `
SELECT c.status, count(*)
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND c.note_id = $2
GROUP BY c.status`

const listByNoteSQL = `
SELECT ` + cardColumns + `
FROM flash_cards c
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND c.note_id = $2
ORDER BY c.term ASC`

const updateReviewSQL = `
UPDATE flash_cards c
SET status = $1,
    review_count = c.review_count + 1,
    last_reviewed_at = $2,
    mastered_at = CASE
      WHEN $3::timestamptz IS NOT NULL THEN $3
      WHEN $4 THEN NULL
      ELSE c.mastered_at
    END,
    updated_at = $5
FROM notes n
WHERE c.note_id = n.id AND n.user_id = $6 AND c.id = $7 AND c.review_count = $8`

const updateStatusSQL = `
UPDATE flash_cards c
SET status = $1,
    last_reviewed_at = $2,
    mastered_at = CASE
      WHEN $3::timestamptz IS NOT NULL THEN $3
      WHEN $4 THEN NULL
      ELSE c.mastered_at
    END,
    updated_at = $5
FROM notes n
WHERE c.note_id = n.id AND n.user_id = $6 AND c.id = $7`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a card by primary key scoped to the owning user.
func (r *Repo) GetByID(ctx context.Context, userID, cardID uuid.UUID) (domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, cardID, userID)
	c, err := scanCard(row)
	if err != nil {
		return domain.Card{}, mapError(err, "flash_card", cardID)
	}

	return c, nil
}

// ListDue returns cards whose review interval has elapsed, ranked weakest
// first. The boundary instant counts as due.
func (r *Repo) ListDue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listDueSQL, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list due cards: %w", err)
	}

	return cards, nil
}

// CountDue returns the number of cards currently due for the user.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countDueSQL, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count due cards: %w", err)
	}

	return count, nil
}

// CountByStatus returns card counts grouped by status for the user.
// Only non-zero groups are returned.
func (r *Repo) CountByStatus(ctx context.Context, userID uuid.UUID) ([]StatusCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count cards by status: %w", err)
	}
	defer rows.Close()

	return scanStatusCounts(rows)
}

// CountByStatusForNote returns card counts grouped by status for one note.
func (r *Repo) CountByStatusForNote(ctx context.Context, userID, noteID uuid.UUID) ([]StatusCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusForNoteSQL, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("count note cards by status: %w", err)
	}
	defer rows.Close()

	return scanStatusCounts(rows)
}

// ListByNote returns all cards of a note ordered by term.
func (r *Repo) ListByNote(ctx context.Context, userID, noteID uuid.UUID) ([]domain.Card, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByNoteSQL, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("list note cards: %w", err)
	}
	defer rows.Close()

	cards, err := scanCards(rows)
	if err != nil {
		return nil, fmt.Errorf("list note cards: %w", err)
	}

	return cards, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// MergeTerms inserts one NOT_STARTED card per term under the note.
// Terms already present (unique note_id+term) are skipped, so repeated
// ingestion never resets learning progress. Returns the number of new cards.
func (r *Repo) MergeTerms(ctx context.Context, noteID uuid.UUID, terms []string) (int, error) {
	if len(terms) == 0 {
		return 0, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	qb := squirrel.Insert("flash_cards").
		Columns("id", "note_id", "term", "status", "review_count", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar).
		Suffix("ON CONFLICT (note_id, term) DO NOTHING")

	for _, term := range terms {
		qb = qb.Values(uuid.New(), noteID, term, storeStatus(domain.CardStatusNotStarted), 0, now, now)
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build merge terms query: %w", err)
	}

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapError(err, "flash_card", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}

// UpdateReview applies a graded transition: status, review_count increment,
// last_reviewed_at and the mastered_at rules, guarded by the expected
// review_count. A guard mismatch on an existing card returns
// domain.ErrConflict; a missing card returns domain.ErrNotFound.
func (r *Repo) UpdateReview(ctx context.Context, userID, cardID uuid.UUID, params ReviewUpdateParams) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, updateReviewSQL,
		storeStatus(params.Status), params.LastReviewedAt,
		params.SetMasteredAt, params.ClearMasteredAt,
		now, userID, cardID, params.ExpectedReviewCount,
	)
	if err != nil {
		return mapError(err, "flash_card", cardID)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a lost optimistic race from a missing card.
		if _, err := r.GetByID(ctx, userID, cardID); err != nil {
			return err
		}
		return fmt.Errorf("flash_card %s: %w", cardID, domain.ErrConflict)
	}

	return nil
}

// UpdateStatus applies a manual status override without touching review_count.
// Returns domain.ErrNotFound if the card does not exist or belongs to
// another user.
func (r *Repo) UpdateStatus(ctx context.Context, userID, cardID uuid.UUID, params StatusUpdateParams) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC().Truncate(time.Microsecond)

	tag, err := querier.Exec(ctx, updateStatusSQL,
		storeStatus(params.Status), params.LastReviewedAt,
		params.SetMasteredAt, params.ClearMasteredAt,
		now, userID, cardID,
	)
	if err != nil {
		return mapError(err, "flash_card", cardID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flash_card %s: %w", cardID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanCard(row pgx.Row) (domain.Card, error) {
	var (
		c      domain.Card
		status string
	)

	if err := row.Scan(&c.ID, &c.NoteID, &c.Term, &status, &c.ReviewCount,
		&c.LastReviewedAt, &c.MasteredAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Card{}, err
	}

	s, err := parseStatus(status)
	if err != nil {
		return domain.Card{}, fmt.Errorf("flash_card %s: %w", c.ID, err)
	}
	c.Status = s

	return c, nil
}

func scanCards(rows pgx.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cards == nil {
		cards = []domain.Card{}
	}

	return cards, nil
}

func scanStatusCounts(rows pgx.Rows) ([]StatusCount, error) {
	var counts []StatusCount
	for rows.Next() {
		var (
			sc     StatusCount
			status string
		)
		if err := rows.Scan(&status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		s, err := parseStatus(status)
		if err != nil {
			return nil, err
		}
		sc.Status = s
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	if counts == nil {
		counts = []StatusCount{}
	}

	return counts, nil
}

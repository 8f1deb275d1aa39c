// Package attempt implements the append-only learning-attempt repository
// using PostgreSQL.
package attempt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/feynman-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// Repo provides learning-attempt persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new learning-attempt repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO learning_attempts (id, card_id, note_id, selected_role, explanation, score, status, feedback, attempt_number, attempted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const listByCardSQL = `
SELECT a.id, a.card_id, a.note_id, a.selected_role, a.explanation, a.score,
       a.status, a.feedback, a.attempt_number, a.attempted_at
FROM learning_attempts a
JOIN flash_cards c ON a.card_id = c.id
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND a.card_id = $2
ORDER BY a.attempt_number DESC
LIMIT $3`

const countSinceSQL = `
SELECT count(*)
FROM learning_attempts a
JOIN flash_cards c ON a.card_id = c.id
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND a.attempted_at >= $2`

// dailyCountsSQL groups attempts by calendar day in the given reference
// timezone; streak and trend math happens against local days, not UTC ones.
const dailyCountsSQL = `
SELECT (a.attempted_at AT TIME ZONE $3)::date AS attempt_date, count(*)
FROM learning_attempts a
JOIN flash_cards c ON a.card_id = c.id
JOIN notes n ON c.note_id = n.id
WHERE n.user_id = $1 AND a.attempted_at >= $2
GROUP BY attempt_date
ORDER BY attempt_date DESC`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create appends a new attempt. A duplicate (card_id, attempt_number) pair
// is always a lost optimistic race, so the unique violation surfaces as
// domain.ErrConflict rather than ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a *domain.Attempt) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		a.ID, a.CardID, a.NoteID, a.Role, a.Explanation,
		a.Score, postgres.StoreStatus(a.Status), a.Feedback, a.AttemptNumber, a.AttemptedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("learning_attempt %s: %w", a.ID, domain.ErrConflict)
		}
		return mapError(err, "learning_attempt", a.ID)
	}

	return nil
}

// ListByCard returns the most recent attempts for a card, newest first,
// scoped to the owning user.
func (r *Repo) ListByCard(ctx context.Context, userID, cardID uuid.UUID, limit int) ([]domain.Attempt, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByCardSQL, userID, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts by card: %w", err)
	}
	defer rows.Close()

	var attempts []domain.Attempt
	for rows.Next() {
		var (
			a      domain.Attempt
			status string
		)
		if err := rows.Scan(&a.ID, &a.CardID, &a.NoteID, &a.Role, &a.Explanation,
			&a.Score, &status, &a.Feedback, &a.AttemptNumber, &a.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		s, err := postgres.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("learning_attempt %s: %w", a.ID, err)
		}
		a.Status = s
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	if attempts == nil {
		attempts = []domain.Attempt{}
	}

	return attempts, nil
}

// CountSince returns the number of attempts for a user at or after the
// given instant.
func (r *Repo) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countSinceSQL, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attempts since: %w", err)
	}

	return count, nil
}

// DailyCounts returns per-day attempt counts since `from`, newest day first.
// Days are calendar days in the given IANA timezone; days with no attempts
// are absent.
func (r *Repo) DailyCounts(ctx context.Context, userID uuid.UUID, from time.Time, timezone string) ([]domain.DayAttemptCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, dailyCountsSQL, userID, from, timezone)
	if err != nil {
		return nil, fmt.Errorf("daily attempt counts: %w", err)
	}
	defer rows.Close()

	var counts []domain.DayAttemptCount
	for rows.Next() {
		var dc domain.DayAttemptCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily counts: %w", err)
	}

	if counts == nil {
		counts = []domain.DayAttemptCount{}
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}

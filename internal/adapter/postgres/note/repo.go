// Package note implements the read-side note repository using PostgreSQL.
// Notes are authored elsewhere; the learning core only resolves them for
// ownership checks and default roles.
package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/feynman-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feynman-backend/internal/domain"
)

// Repo provides note lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new note repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, user_id, title, default_role, created_at, updated_at
FROM notes
WHERE id = $1 AND user_id = $2`

// GetByID returns a note by primary key scoped to the owning user.
// Returns domain.ErrNotFound if absent or owned by someone else.
func (r *Repo) GetByID(ctx context.Context, userID, noteID uuid.UUID) (domain.Note, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n domain.Note
	err := querier.QueryRow(ctx, getByIDSQL, noteID, userID).
		Scan(&n.ID, &n.UserID, &n.Title, &n.DefaultRole, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Note{}, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
		}
		return domain.Note{}, fmt.Errorf("note %s: %w", noteID, err)
	}

	return n, nil
}

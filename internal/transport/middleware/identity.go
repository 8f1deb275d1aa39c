package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/feynman-backend/pkg/ctxutil"
)

// DefaultUserID is the seeded single-user account. Requests without an
// X-User-Id header act on behalf of this user, so single-user installs need
// no identity setup at all.
var DefaultUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Identity resolves the acting user from the X-User-Id header and stores it
// in the request context. A malformed header is a client error; a missing
// one falls back to the default user.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := DefaultUserID

		if raw := r.Header.Get("X-User-Id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid X-User-Id header", http.StatusBadRequest)
				return
			}
			userID = parsed
		}

		ctx := ctxutil.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

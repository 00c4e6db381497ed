package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/pkg/logger"
)

// SessionHeader carries the anonymous session identity. The server mints
// one on first contact; clients echo it back on every call so carts,
// pickups and transcripts stay scoped to the same visitor.
const SessionHeader = "X-WW-Session"

type sessionCtxKey struct{}

// Session ensures every request carries a session UUID and exposes it via
// context. A missing or malformed header gets a fresh identity rather
// than an error, matching how an anonymous storefront behaves.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(SessionHeader))
			sessionID, err := uuid.Parse(raw)
			if raw == "" || err != nil {
				sessionID = uuid.New()
			}

			w.Header().Set(SessionHeader, sessionID.String())

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID stores a session identity on the context.
func WithSessionID(ctx context.Context, sessionID uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionIDFromContext returns the request's session identity. The zero
// UUID means the session middleware did not run.
func SessionIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(sessionCtxKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestID attaches a request id to the context logger, minting one when
// the client did not supply an X-Request-Id header.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, requestID)
			}

			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

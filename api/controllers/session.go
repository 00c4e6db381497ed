package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/api/middleware"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
)

// requireSession pulls the visitor identity minted by the session
// middleware. A nil UUID means the route was mounted outside the session
// chain, which is a wiring bug rather than client error.
func requireSession(ctx context.Context) (uuid.UUID, error) {
	sessionID := middleware.SessionIDFromContext(ctx)
	if sessionID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}

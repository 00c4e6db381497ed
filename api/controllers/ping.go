package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/api/middleware"
	"github.com/wastewise/wastewise-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func SessionPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "session", "status": "ok"}
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != uuid.Nil {
			payload["session_id"] = sessionID.String()
		}
		responses.WriteSuccess(w, payload)
	}
}

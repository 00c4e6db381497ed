package controllers

import (
	"net/http"

	"github.com/wastewise/wastewise-backend/api/responses"
	"github.com/wastewise/wastewise-backend/api/validators"
	chatsvc "github.com/wastewise/wastewise-backend/internal/chat"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
)

// ChatSend records a visitor message and answers it.
func ChatSend(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload chatMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Send(r.Context(), sessionID, payload.Message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, reply)
	}
}

// historyDefault is how many transcript entries a replay shows unless
// the client asks for more.
const historyDefault = 5

// ChatHistory returns the session transcript oldest first. ?limit caps
// how many of the newest entries are replayed.
func ChatHistory(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", historyDefault, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messages, err := svc.History(r.Context(), sessionID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, messages)
	}
}

// ChatClear wipes the session transcript.
func ChatClear(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

type chatMessageRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

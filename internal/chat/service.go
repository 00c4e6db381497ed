package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/internal/ai"
	"github.com/wastewise/wastewise-backend/pkg/db/models"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
)

const (
	// historyKeep bounds how many transcript entries a session retains.
	historyKeep = pagination.MaxLimit

	// contextReplay is how many recent messages are replayed to the
	// remote provider for conversational context.
	contextReplay = 5

	maxMessageLength = 1000
)

// Service answers assistant messages and keeps the session transcript.
type Service interface {
	Send(ctx context.Context, sessionID uuid.UUID, message string) (*Reply, error)
	History(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.ChatMessage, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// Reply is the assistant's answer to one message.
type Reply struct {
	Body   string `json:"body"`
	Remote bool   `json:"remote"`
}

type service struct {
	repo     Repository
	provider ai.CompletionProvider
	logg     *logger.Logger
}

// NewService builds a chat service with the required dependencies. The
// provider may be ai.Disabled when no remote vendor is configured.
func NewService(repo Repository, provider ai.CompletionProvider, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("completion provider required")
	}
	return &service{repo: repo, provider: provider, logg: logg}, nil
}

func (s *service) Send(ctx context.Context, sessionID uuid.UUID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len(message) > maxMessageLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is too long")
	}

	recent, err := s.repo.FindBySession(ctx, sessionID, contextReplay)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transcript")
	}

	if err := s.repo.Create(ctx, &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Sender:    enums.ChatSenderUser,
		Body:      message,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving user message")
	}

	reply := s.answer(ctx, message, recent)

	if err := s.repo.Create(ctx, &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Sender:    enums.ChatSenderAssistant,
		Body:      reply.Body,
		Remote:    reply.Remote,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving assistant message")
	}
	if err := s.repo.TrimHistory(ctx, sessionID, historyKeep); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "trimming transcript")
	}

	return reply, nil
}

// History returns the last limit transcript entries oldest first, so a
// client can replay them in conversation order.
func (s *service) History(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > historyKeep {
		limit = historyKeep
	}
	messages, err := s.repo.FindBySession(ctx, sessionID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transcript")
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing transcript")
	}
	return nil
}

// answer prefers the remote vendor and falls back to the local knowledge
// table on any failure.
func (s *service) answer(ctx context.Context, message string, recent []models.ChatMessage) *Reply {
	if s.provider.Enabled() {
		text, err := s.provider.Complete(ctx, buildPrompt(message, recent))
		if err == nil {
			return &Reply{Body: text, Remote: true}
		}
		if s.logg != nil {
			s.logg.Warn(ctx, "chat provider failed, using local fallback")
		}
	}
	return &Reply{Body: Respond(message)}
}

// buildPrompt replays the newest transcript entries oldest-first so the
// vendor sees the conversation in natural order.
func buildPrompt(message string, recent []models.ChatMessage) string {
	var sb strings.Builder
	sb.WriteString("You are the WasteWise assistant for a waste recycling marketplace in India. ")
	sb.WriteString("Answer briefly and practically about waste pickups, scrap rates, recycling and green rewards.\n\n")

	for i := len(recent) - 1; i >= 0; i-- {
		entry := recent[i]
		role := "Customer"
		if entry.Sender == enums.ChatSenderAssistant {
			role = "Assistant"
		}
		fmt.Fprintf(&sb, "%s: %s\n", role, entry.Body)
	}

	fmt.Fprintf(&sb, "Customer: %s\nAssistant:", message)
	return sb.String()
}

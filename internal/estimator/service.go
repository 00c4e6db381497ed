package estimator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wastewise/wastewise-backend/internal/ai"
	"github.com/wastewise/wastewise-backend/pkg/db/models"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
)

// historyKeep bounds how many estimates a session retains.
const historyKeep = pagination.DefaultLimit

// Service computes quotes and keeps a per-session quote history.
type Service interface {
	Quote(ctx context.Context, sessionID uuid.UUID, req Request) (*QuoteView, error)
	History(ctx context.Context, sessionID uuid.UUID) ([]models.Estimate, error)
}

// QuoteView is the quote plus the optional market insight line.
type QuoteView struct {
	Result  Result `json:"result"`
	Insight string `json:"insight,omitempty"`
	Remote  bool   `json:"remote"`
}

type service struct {
	repo     Repository
	provider ai.CompletionProvider
	logg     *logger.Logger
}

// NewService builds an estimator service with the required dependencies.
// The provider may be ai.Disabled when no remote vendor is configured.
func NewService(repo Repository, provider ai.CompletionProvider, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("estimator repository required")
	}
	if provider == nil {
		return nil, fmt.Errorf("completion provider required")
	}
	return &service{repo: repo, provider: provider, logg: logg}, nil
}

func (s *service) Quote(ctx context.Context, sessionID uuid.UUID, req Request) (*QuoteView, error) {
	result, err := Estimate(req)
	if err != nil {
		return nil, err
	}

	view := &QuoteView{Result: result}
	view.Insight, view.Remote = s.insight(ctx, req, result)

	record := &models.Estimate{
		ID:        uuid.New(),
		SessionID: sessionID,
		Material:  req.Material,
		ItemName:  strings.TrimSpace(req.ItemName),
		Quantity:  req.Quantity,
		Condition: req.Condition,
		Point:     result.Point,
		Min:       result.Min,
		Max:       result.Max,
		Insight:   view.Insight,
	}
	if record.Condition == "" {
		record.Condition = "fair"
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving estimate")
	}
	if err := s.repo.TrimHistory(ctx, sessionID, historyKeep); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "trimming estimate history")
	}

	return view, nil
}

func (s *service) History(ctx context.Context, sessionID uuid.UUID) ([]models.Estimate, error) {
	estimates, err := s.repo.FindBySession(ctx, sessionID, historyKeep)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading estimate history")
	}
	return estimates, nil
}

// insight asks the remote vendor for a one-line market note and falls back
// to a canned line when the vendor is unavailable.
func (s *service) insight(ctx context.Context, req Request, result Result) (string, bool) {
	if s.provider.Enabled() {
		text, err := s.provider.Complete(ctx, insightPrompt(req, result))
		if err == nil {
			return text, true
		}
		if s.logg != nil {
			s.logg.Warn(ctx, "insight provider failed, using local fallback")
		}
	}
	return localInsight(req, result), false
}

func insightPrompt(req Request, result Result) string {
	subject := req.ItemName
	if subject == "" {
		subject = fmt.Sprintf("%s scrap", req.Material)
	}
	return fmt.Sprintf(
		"In one sentence, give a market insight for selling %s in India. The estimated resale range is ₹%s to ₹%s. Mention one tip to get a better price.",
		subject, result.Min, result.Max,
	)
}

func localInsight(req Request, result Result) string {
	if result.HighValue {
		return fmt.Sprintf("Working devices resell far above scrap value. Include the charger and box to land near the top of the ₹%s-₹%s range.", result.Min, result.Max)
	}
	return fmt.Sprintf("Clean and sorted %s fetches better rates. Bundling larger lots unlocks quantity bonuses above the base rate.", req.Material)
}

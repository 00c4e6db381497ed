package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wastewise/wastewise-backend/api/responses"
	"github.com/wastewise/wastewise-backend/api/validators"
	estimatorsvc "github.com/wastewise/wastewise-backend/internal/estimator"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/pagination"
)

// EstimateQuote prices an item and records the quote in the session's
// history.
func EstimateQuote(svc estimatorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimator service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := payload.toRequest()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Quote(r.Context(), sessionID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// EstimateHistory lists the session's recent quotes newest first.
func EstimateHistory(svc estimatorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimator service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimates, err := svc.History(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit = pagination.NormalizeLimit(limit); len(estimates) > limit {
			estimates = estimates[:limit]
		}

		responses.WriteSuccess(w, estimates)
	}
}

type estimateRequest struct {
	Material  string  `json:"material" validate:"required"`
	ItemName  string  `json:"item_name" validate:"omitempty,max=200"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Unit      string  `json:"unit" validate:"required"`
	Condition string  `json:"condition" validate:"omitempty"`
}

func (p estimateRequest) toRequest() (estimatorsvc.Request, error) {
	material, err := enums.ParseMaterialType(p.Material)
	if err != nil {
		return estimatorsvc.Request{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid material")
	}

	unit, err := enums.ParseEstimateUnit(p.Unit)
	if err != nil {
		return estimatorsvc.Request{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit")
	}

	var condition enums.ItemCondition
	if p.Condition != "" {
		condition, err = enums.ParseItemCondition(p.Condition)
		if err != nil {
			return estimatorsvc.Request{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
	}

	return estimatorsvc.Request{
		Material:  material,
		ItemName:  p.ItemName,
		Quantity:  decimal.NewFromFloat(p.Quantity),
		Unit:      unit,
		Condition: condition,
	}, nil
}

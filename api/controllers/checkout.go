package controllers

import (
	"net/http"

	"github.com/wastewise/wastewise-backend/api/responses"
	"github.com/wastewise/wastewise-backend/api/validators"
	ordersvc "github.com/wastewise/wastewise-backend/internal/orders"
	"github.com/wastewise/wastewise-backend/pkg/enums"
	pkgerrors "github.com/wastewise/wastewise-backend/pkg/errors"
	"github.com/wastewise/wastewise-backend/pkg/logger"
	"github.com/wastewise/wastewise-backend/pkg/types"
)

// Checkout converts the session's cart into a placed order.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		sessionID, err := requireSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		order, err := svc.Checkout(r.Context(), ordersvc.CheckoutInput{
			SessionID:     sessionID,
			PaymentMethod: method,
			Contact:       payload.Contact.toContact(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type checkoutRequest struct {
	PaymentMethod string         `json:"payment_method" validate:"required"`
	Contact       contactPayload `json:"contact" validate:"required"`
}

type contactPayload struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required,phone,max=20"`
	Address string `json:"address" validate:"required,max=500"`
	City    string `json:"city" validate:"omitempty,max=120"`
	Pincode string `json:"pincode" validate:"omitempty,len=6"`
	Notes   string `json:"notes" validate:"omitempty,max=500"`
}

func (p contactPayload) toContact() types.Contact {
	return types.Contact{
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
		City:    p.City,
		Pincode: p.Pincode,
		Notes:   p.Notes,
	}
}

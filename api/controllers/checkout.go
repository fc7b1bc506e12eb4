package controllers

import (
	"net/http"

	"github.com/andradelabs/motopecas-backend/api/middleware"
	"github.com/andradelabs/motopecas-backend/api/responses"
	"github.com/andradelabs/motopecas-backend/api/validators"
	"github.com/andradelabs/motopecas-backend/internal/checkout"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

type checkoutPreviewRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=pix credit_card boleto"`
}

type checkoutSubmitRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=3,max=120"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	AddressLine   string `json:"address_line" validate:"required,min=5,max=200"`
	PostalCode    string `json:"postal_code" validate:"required,cep"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=pix credit_card boleto"`
}

// PreviewCheckout recomputes the totals for the selected payment method,
// including the instant-payment incentive, without creating anything.
func PreviewCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload checkoutPreviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		totals, err := svc.Preview(r.Context(), sessionID, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}

// SubmitCheckout turns the cart into an order.
func SubmitCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload checkoutSubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		order, err := svc.Submit(r.Context(), sessionID, checkout.SubmitInput{
			CustomerName:  payload.CustomerName,
			CustomerEmail: payload.CustomerEmail,
			AddressLine:   payload.AddressLine,
			PostalCode:    payload.PostalCode,
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

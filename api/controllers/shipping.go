package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/api/middleware"
	"github.com/andradelabs/motopecas-backend/api/responses"
	"github.com/andradelabs/motopecas-backend/api/validators"
	"github.com/andradelabs/motopecas-backend/internal/cart"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
)

type shippingQuoteRequest struct {
	PostalCode string `json:"postal_code" validate:"required,cep"`
}

type shippingQuoteResponse struct {
	Fee  decimal.Decimal `json:"fee"`
	Cart *cart.State     `json:"cart"`
}

type feeResolver interface {
	Quote(ctx context.Context, postalCode string, items []cart.LineItem) (decimal.Decimal, error)
}

// QuoteShipping resolves a shipping fee for the cart and stores it so the
// checkout gate sees a quoted fee.
func QuoteShipping(carts cart.Service, resolver feeResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload shippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := carts.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fee, err := resolver.Quote(r.Context(), payload.PostalCode, state.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err = carts.SetShippingFee(r.Context(), sessionID, fee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, shippingQuoteResponse{Fee: fee, Cart: state})
	}
}

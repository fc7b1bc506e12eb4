package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andradelabs/motopecas-backend/internal/cart"
	"github.com/andradelabs/motopecas-backend/internal/checkout"
	"github.com/andradelabs/motopecas-backend/pkg/db/models"
	"github.com/andradelabs/motopecas-backend/pkg/enums"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

type stubCheckoutService struct {
	totals     checkout.Totals
	order      *models.Order
	err        error
	lastMethod enums.PaymentMethod
}

func (s *stubCheckoutService) Totals(state *cart.State, method enums.PaymentMethod) checkout.Totals {
	return s.totals
}

func (s *stubCheckoutService) Preview(ctx context.Context, sessionID uuid.UUID, method enums.PaymentMethod) (*checkout.Totals, error) {
	s.lastMethod = method
	if s.err != nil {
		return nil, s.err
	}
	return &s.totals, nil
}

func (s *stubCheckoutService) Submit(ctx context.Context, sessionID uuid.UUID, input checkout.SubmitInput) (*models.Order, error) {
	s.lastMethod = input.PaymentMethod
	return s.order, s.err
}

func TestPreviewCheckoutParsesPaymentMethod(t *testing.T) {
	svc := &stubCheckoutService{}
	handler, sessionID := withSession(PreviewCheckout(svc, nil))

	rec := doJSON(t, handler, sessionID, "POST", "/checkout/preview", `{"payment_method":"pix"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, enums.PaymentMethodPix, svc.lastMethod)

	rec = doJSON(t, handler, sessionID, "POST", "/checkout/preview", `{"payment_method":"cash"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitCheckoutCreatesOrder(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{ID: uuid.New()}}
	handler, sessionID := withSession(SubmitCheckout(svc, nil))

	body := `{"customer_name":"João da Silva","customer_email":"joao@example.com",` +
		`"address_line":"Rua das Motos, 123","postal_code":"01310-100","payment_method":"boleto"}`
	rec := doJSON(t, handler, sessionID, "POST", "/checkout", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, enums.PaymentMethodBoleto, svc.lastMethod)
}

func TestSubmitCheckoutSurfacesGateFailures(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "calculate shipping before checking out")}
	handler, sessionID := withSession(SubmitCheckout(svc, nil))

	body := `{"customer_name":"João da Silva","customer_email":"joao@example.com",` +
		`"address_line":"Rua das Motos, 123","postal_code":"01310-100","payment_method":"pix"}`
	rec := doJSON(t, handler, sessionID, "POST", "/checkout", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "calculate shipping")
}

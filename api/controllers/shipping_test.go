package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andradelabs/motopecas-backend/internal/cart"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

type stubFeeResolver struct {
	fee      decimal.Decimal
	err      error
	lastCEP  string
	numItems int
}

func (s *stubFeeResolver) Quote(ctx context.Context, postalCode string, items []cart.LineItem) (decimal.Decimal, error) {
	s.lastCEP = postalCode
	s.numItems = len(items)
	return s.fee, s.err
}

func TestQuoteShippingStoresFeeOnCart(t *testing.T) {
	state := cart.NewState()
	state.Add(cart.LineItem{ID: "x-default", Quantity: 2, Price: decimal.RequireFromString("50.00")})
	svc := &stubCartService{state: state}
	resolver := &stubFeeResolver{fee: decimal.RequireFromString("22.50")}
	handler, sessionID := withSession(QuoteShipping(svc, resolver, nil))

	rec := doJSON(t, handler, sessionID, "POST", "/cart/shipping", `{"postal_code":"01310-100"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "01310-100", resolver.lastCEP)
	assert.Equal(t, 1, resolver.numItems)
	assert.True(t, svc.lastFee.Equal(decimal.RequireFromString("22.50")))
	assert.Contains(t, rec.Body.String(), `"fee":"22.5"`)
}

func TestQuoteShippingRejectsMalformedCEPBeforeResolving(t *testing.T) {
	svc := &stubCartService{state: cart.NewState()}
	resolver := &stubFeeResolver{fee: decimal.NewFromInt(10)}
	handler, sessionID := withSession(QuoteShipping(svc, resolver, nil))

	for _, body := range []string{`{"postal_code":"29100010"}`, `{"postal_code":"abcde-fgh"}`, `{}`} {
		rec := doJSON(t, handler, sessionID, "POST", "/cart/shipping", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
	assert.Empty(t, resolver.lastCEP)
}

func TestQuoteShippingPropagatesCarrierOutage(t *testing.T) {
	svc := &stubCartService{state: cart.NewState()}
	resolver := &stubFeeResolver{err: pkgerrors.New(pkgerrors.CodeNetwork, "carrier unreachable")}
	handler, sessionID := withSession(QuoteShipping(svc, resolver, nil))

	rec := doJSON(t, handler, sessionID, "POST", "/cart/shipping", `{"postal_code":"01310-100"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package shipping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andradelabs/motopecas-backend/pkg/config"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

func carrierConfig(url string) config.ShippingConfig {
	return config.ShippingConfig{
		CarrierURL:       url,
		CarrierToken:     "test-token",
		OriginPostalCode: "29100-010",
		ServiceID:        1,
	}
}

func sampleBox() Box {
	return Box{
		HeightCm: money("10.86"),
		WidthCm:  money("13.57"),
		LengthCm: money("16.29"),
		WeightKg: money("2.42"),
	}
}

func TestClientQuoteFirstPriceWins(t *testing.T) {
	var captured quoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"PAC","price":"17.93"},{"id":2,"name":"SEDEX","price":"28.40"}]`))
	}))
	defer server.Close()

	client := NewClient(carrierConfig(server.URL))
	fee, err := client.Quote(context.Background(), "01310-100", sampleBox(), money("250.00"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(money("17.93")), "fee %s", fee)

	assert.Equal(t, "29100-010", captured.From.PostalCode)
	assert.Equal(t, "01310-100", captured.To.PostalCode)
	require.Len(t, captured.Products, 1)
	assert.True(t, captured.Products[0].InsuranceValue.Equal(money("250.00")))
	assert.Equal(t, 1, captured.Products[0].Quantity)
	assert.Equal(t, []int{1}, captured.Services)
}

func TestClientQuoteNumericPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"price":21.5}]`))
	}))
	defer server.Close()

	client := NewClient(carrierConfig(server.URL))
	fee, err := client.Quote(context.Background(), "01310-100", sampleBox(), money("100.00"))
	require.NoError(t, err)
	assert.True(t, fee.Equal(money("21.50")))
}

func TestClientQuoteNon2xxIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthenticated"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(carrierConfig(server.URL))
	_, err := client.Quote(context.Background(), "01310-100", sampleBox(), money("100.00"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUpstream, pkgerrors.As(err).Code())
}

func TestClientQuoteEmptyListIsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(carrierConfig(server.URL))
	_, err := client.Quote(context.Background(), "01310-100", sampleBox(), money("100.00"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUpstream, pkgerrors.As(err).Code())
}

func TestClientQuoteUnreachableHostIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(carrierConfig(server.URL))
	_, err := client.Quote(context.Background(), "01310-100", sampleBox(), money("100.00"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNetwork, pkgerrors.As(err).Code())
}

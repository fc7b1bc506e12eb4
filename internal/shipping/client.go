package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/pkg/config"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
)

// Client quotes freight against the carrier rate API (Melhor Envio shaped:
// POST a from/to/products payload, get back an array of service quotes).
type Client struct {
	httpClient *http.Client
	url        string
	token      string
	originCEP  string
	serviceID  int
}

// NewClient builds a carrier client from the shipping configuration.
func NewClient(cfg config.ShippingConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.CarrierTimeout},
		url:        cfg.CarrierURL,
		token:      cfg.CarrierToken,
		originCEP:  cfg.OriginPostalCode,
		serviceID:  cfg.ServiceID,
	}
}

type quoteEndpoint struct {
	PostalCode string `json:"postal_code"`
}

type quoteProduct struct {
	WeightKg       decimal.Decimal `json:"weight"`
	WidthCm        decimal.Decimal `json:"width"`
	HeightCm       decimal.Decimal `json:"height"`
	LengthCm       decimal.Decimal `json:"length"`
	InsuranceValue decimal.Decimal `json:"insurance_value"`
	Quantity       int             `json:"quantity"`
}

type quoteRequest struct {
	From     quoteEndpoint  `json:"from"`
	To       quoteEndpoint  `json:"to"`
	Products []quoteProduct `json:"products"`
	Services []int          `json:"services"`
}

type quoteResponse struct {
	Price json.Number `json:"price"`
}

// Quote asks the carrier for a rate on a single packed box. insurance is the
// declared value of the shipment (the cart's item subtotal). The first quote
// in the response wins. Transport failures come back as network errors,
// non-2xx responses and empty quote lists as upstream errors; there is no
// silent zero fallback.
func (c *Client) Quote(ctx context.Context, destination string, box Box, insurance decimal.Decimal) (decimal.Decimal, error) {
	payload := quoteRequest{
		From: quoteEndpoint{PostalCode: c.originCEP},
		To:   quoteEndpoint{PostalCode: destination},
		Products: []quoteProduct{{
			WeightKg:       box.WeightKg,
			WidthCm:        box.WidthCm,
			HeightCm:       box.HeightCm,
			LengthCm:       box.LengthCm,
			InsuranceValue: insurance,
			Quantity:       1,
		}},
		Services: []int{c.serviceID},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode carrier request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build carrier request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, "carrier unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeUpstream, "carrier rejected quote request").
			WithDetails(map[string]any{"status": resp.StatusCode, "body": string(raw)})
	}

	var quotes []quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode carrier response")
	}
	if len(quotes) == 0 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeUpstream, "carrier returned no quotes")
	}

	price, err := decimal.NewFromString(quotes[0].Price.String())
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("invalid carrier price %q", quotes[0].Price))
	}
	return price.Round(2), nil
}

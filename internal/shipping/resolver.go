package shipping

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andradelabs/motopecas-backend/internal/cart"
	pkgerrors "github.com/andradelabs/motopecas-backend/pkg/errors"
	"github.com/andradelabs/motopecas-backend/pkg/logger"
	"github.com/andradelabs/motopecas-backend/pkg/metrics"
)

// CEP: five digits, dash, three digits.
var cepPattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// localRates maps CEP prefixes around the warehouse (Vila Velha / Vitória
// region) to flat courier fees delivered without the carrier.
var localRates = map[string]decimal.Decimal{
	"29100": decimal.NewFromInt(12),
	"29101": decimal.NewFromInt(12),
	"29090": decimal.NewFromInt(15),
	"29060": decimal.NewFromInt(15),
}

const (
	outcomeLocal   = "local"
	outcomeCarrier = "carrier"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

type carrierQuoter interface {
	Quote(ctx context.Context, destination string, box Box, insurance decimal.Decimal) (decimal.Decimal, error)
}

// Resolver turns a destination CEP plus cart contents into a shipping fee:
// local flat-rate table first, carrier API otherwise.
type Resolver struct {
	carrier carrierQuoter
	metrics *metrics.ShippingMetrics
	logg    *logger.Logger
}

// NewResolver wires the resolver. metrics and logg may be nil.
func NewResolver(carrier carrierQuoter, m *metrics.ShippingMetrics, logg *logger.Logger) (*Resolver, error) {
	if carrier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "carrier client required")
	}
	return &Resolver{carrier: carrier, metrics: m, logg: logg}, nil
}

// ValidCEP reports whether the postal code matches the 00000-000 format.
func ValidCEP(postalCode string) bool {
	return cepPattern.MatchString(postalCode)
}

// Quote resolves the shipping fee for the given destination and items.
// Malformed CEPs fail before any I/O. The declared insurance value sent to
// the carrier is the item subtotal.
func (r *Resolver) Quote(ctx context.Context, postalCode string, items []cart.LineItem) (decimal.Decimal, error) {
	if !ValidCEP(postalCode) {
		r.metrics.IncQuote(outcomeInvalid)
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "postal code must match the 00000-000 format").
			WithDetails(map[string]string{"postal_code": postalCode})
	}

	if fee, ok := localRates[postalCode[:5]]; ok {
		r.metrics.IncQuote(outcomeLocal)
		return fee.Round(2), nil
	}

	box := PackItems(items)
	insurance := itemsSubtotal(items)

	start := time.Now()
	fee, err := r.carrier.Quote(ctx, postalCode, box, insurance)
	elapsed := time.Since(start)
	if err != nil {
		r.metrics.IncQuote(outcomeError)
		r.metrics.ObserveQuoteDuration(outcomeError, elapsed)
		if r.logg != nil {
			r.logg.Error(r.logg.WithField(ctx, "postal_code", postalCode), "shipping.quote_failed", err)
		}
		return decimal.Zero, err
	}

	r.metrics.IncQuote(outcomeCarrier)
	r.metrics.ObserveQuoteDuration(outcomeCarrier, elapsed)
	return fee, nil
}

func itemsSubtotal(items []cart.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal.Round(2)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShippingMetrics tracks carrier quote outcomes.
type ShippingMetrics struct {
	quotes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewShippingMetrics registers the shipping metrics on the provided registerer.
func NewShippingMetrics(reg prometheus.Registerer) *ShippingMetrics {
	if reg == nil {
		return &ShippingMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipping_quotes_total",
		Help: "Shipping quote attempts by outcome (local, carrier, invalid, error).",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shipping_quote_duration_seconds",
		Help:    "Latency of carrier quote requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(quotes, duration)
	return &ShippingMetrics{
		quotes:   quotes,
		duration: duration,
	}
}

// IncQuote increments the per-outcome quote counter.
func (m *ShippingMetrics) IncQuote(outcome string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveQuoteDuration records the latency of a quote attempt.
func (m *ShippingMetrics) ObserveQuoteDuration(outcome string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outcome)).Observe(elapsed.Seconds())
}

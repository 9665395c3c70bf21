package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records settlement outcomes per payment method.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_settlement_duration_seconds",
		Help:    "Duration of checkout settlements in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_settlement_success",
		Help: "Settlements that committed.",
	}, []string{"method"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_settlement_failure",
		Help: "Settlements that rolled back.",
	}, []string{"method"})
	reg.MustRegister(duration, success, failure)
	return &CheckoutMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the settlement duration for the payment method.
func (c *CheckoutMetrics) ObserveDuration(method string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(method)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the payment method.
func (c *CheckoutMetrics) IncSuccess(method string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncFailure increments the failure counter for the payment method.
func (c *CheckoutMetrics) IncFailure(method string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(method)).Inc()
}

func normalizeLabel(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}

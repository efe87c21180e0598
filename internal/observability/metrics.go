package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payment"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Metrics struct {
	outcomes       *prometheus.CounterVec
	charges        *prometheus.CounterVec
	chargeDuration prometheus.Histogram
	gatherer       prometheus.Gatherer
}

// NewMetrics registers the payment collectors on a dedicated registry so
// independent instances (and tests) never collide on names.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Payment outcomes returned to callers, by result.",
		}, []string{"result"}),
		charges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "charges_total",
			Help:      "Charge calls made to the payment gateway, by result.",
		}, []string{"result"}),
		chargeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "charge_duration_seconds",
			Help:      "Latency of charge calls to the payment gateway.",
			Buckets:   prometheus.DefBuckets,
		}),
		gatherer: registry,
	}

	registry.MustRegister(m.outcomes, m.charges, m.chargeDuration)
	return m
}

func (m *Metrics) ObserveOutcome(success bool) {
	m.outcomes.WithLabelValues(result(success)).Inc()
}

func (m *Metrics) ObserveCharge(success bool, duration time.Duration) {
	m.charges.WithLabelValues(result(success)).Inc()
	m.chargeDuration.Observe(duration.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) OutcomeCounter(success bool) prometheus.Counter {
	return m.outcomes.WithLabelValues(result(success))
}

func (m *Metrics) ChargeCounter(success bool) prometheus.Counter {
	return m.charges.WithLabelValues(result(success))
}

func result(success bool) string {
	if success {
		return ResultSuccess
	}
	return ResultFailure
}

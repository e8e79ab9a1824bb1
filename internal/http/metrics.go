package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/crm-client/internal/constants"
	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

// Metrics records per-method request counts and latency.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "requests_total",
			Help:      "Requests sent, by HTTP method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency, by HTTP method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, collector := range []prometheus.Collector{metrics.requests, metrics.duration} {
		err := registerer.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	return metrics, nil
}

// Observe records one finished request.
func (m *Metrics) Observe(method string, duration time.Duration, err error) {
	m.requests.WithLabelValues(method, Outcome(err)).Inc()
	m.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// Requests returns the counter for a method and outcome.
func (m *Metrics) Requests(method, outcome string) prometheus.Counter {
	return m.requests.WithLabelValues(method, outcome)
}

// Outcome maps a request result to a metric label.
func Outcome(err error) string {
	if err == nil {
		return constants.OutcomeSuccess
	}

	kind, _ := crm.KindOf(err)

	return strings.ReplaceAll(kind.String(), " ", "_")
}

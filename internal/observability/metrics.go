package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for outbound provider traffic.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={geocoding,forecast}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
	UpstreamRetries  prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.UpstreamRetries,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cityweather",
			Name:      "upstream_requests_total",
			Help:      "OpenWeatherMap requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cityweather",
			Name:      "upstream_request_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds, retries included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		UpstreamRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cityweather",
			Name:      "upstream_retries_total",
			Help:      "Retry attempts triggered by transient 5xx responses.",
		}),
	}
}

// RecordUpstream increments the request counter for one completed call.
func (m *Metrics) RecordUpstream(endpoint string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

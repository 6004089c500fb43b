package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded per outbound provider call
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ProviderMetricsCollector tracks outbound calls to the weather provider
type ProviderMetricsCollector struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

var (
	globalCollector *ProviderMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *ProviderMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &ProviderMetricsCollector{
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weather_provider_requests_total",
					Help: "The total number of outbound weather provider requests",
				},
				[]string{"endpoint", "outcome"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weather_provider_request_duration_seconds",
					Help:    "Outbound weather provider request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"endpoint"},
			),
		}
	})
	return globalCollector
}

// RecordProviderRequest records one outbound provider call with its outcome and duration
func RecordProviderRequest(endpoint, outcome string, duration time.Duration) {
	collector := getCollector()
	collector.Requests.WithLabelValues(endpoint, outcome).Inc()
	collector.Latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

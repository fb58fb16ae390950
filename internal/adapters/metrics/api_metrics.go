package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetricsCollector handles price feed request metrics
type APIMetricsCollector struct {
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration *prometheus.HistogramVec
	apiRetries         *prometheus.CounterVec
	apiRateLimitWait   *prometheus.HistogramVec
	circuitState       prometheus.Gauge
}

// NewAPIMetricsCollector creates a new API metrics collector
func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_requests_total",
				Help:      "Total number of price feed requests by endpoint and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		apiRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_request_duration_seconds",
				Help:      "Price feed request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),

		apiRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_retries_total",
				Help:      "Total number of price feed retry attempts",
			},
			[]string{"method", "endpoint", "reason"},
		),

		apiRateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "api_rate_limit_wait_seconds",
				Help:      "Time spent waiting for the client-side rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"method", "endpoint"},
		),

		// 0 closed, 1 open, 2 half-open
		circuitState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "circuit_breaker_state",
				Help:      "Price feed circuit breaker state (0 closed, 1 open, 2 half-open)",
			},
		),
	}
}

// Register registers all API metrics with the Prometheus registry
func (c *APIMetricsCollector) Register() error {
	return register(
		c.apiRequestsTotal,
		c.apiRequestDuration,
		c.apiRetries,
		c.apiRateLimitWait,
		c.circuitState,
	)
}

// RecordAPIRequest records a completed price feed request
func (c *APIMetricsCollector) RecordAPIRequest(method string, endpoint string, statusCode int, duration float64) {
	c.apiRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.apiRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordAPIRetry records a retry attempt
func (c *APIMetricsCollector) RecordAPIRetry(method string, endpoint string, reason string) {
	c.apiRetries.WithLabelValues(method, endpoint, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *APIMetricsCollector) RecordRateLimitWait(method string, endpoint string, duration float64) {
	c.apiRateLimitWait.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCircuitState records the breaker state as its numeric value
func (c *APIMetricsCollector) RecordCircuitState(state int) {
	c.circuitState.Set(float64(state))
}

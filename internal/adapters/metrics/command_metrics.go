package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector handles query execution metrics recorded by the mediator middleware
type CommandMetricsCollector struct {
	queryDuration *prometheus.HistogramVec
	queriesTotal  *prometheus.CounterVec
}

// NewCommandMetricsCollector creates a new query metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "query_duration_seconds",
				Help:      "Query execution duration distribution, including price feed round trips",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"query", "status"},
		),

		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "queries_total",
				Help:      "Total number of queries executed by type and status",
			},
			[]string{"query", "status"},
		),
	}
}

// Register registers all query metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	return register(c.queryDuration, c.queriesTotal)
}

// RecordCommandExecution records one query execution
func (c *CommandMetricsCollector) RecordCommandExecution(queryName string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	c.queryDuration.WithLabelValues(queryName, status).Observe(duration)
	c.queriesTotal.WithLabelValues(queryName, status).Inc()
}

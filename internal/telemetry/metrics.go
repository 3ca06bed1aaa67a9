// Package telemetry exposes Prometheus metrics for the storage layer and the
// session store.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects statement and session metrics on its own registry.
type Metrics struct {
	statements        *prometheus.CounterVec
	statementErrors   *prometheus.CounterVec
	statementDuration *prometheus.HistogramVec
	sessionsPruned    prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		statements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_statements_total",
				Help:      "Total number of executed SQL statements",
			},
			[]string{"kind"},
		),
		statementErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_statement_errors_total",
				Help:      "Total number of SQL statements that returned an error",
			},
			[]string{"kind"},
		),
		statementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_statement_duration_seconds",
				Help:      "SQL statement duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		sessionsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_pruned_total",
				Help:      "Total number of expired sessions removed",
			},
		),
	}

	registry.MustRegister(
		m.statements,
		m.statementErrors,
		m.statementDuration,
		m.sessionsPruned,
	)

	return m
}

// ObserveStatement records one executed statement.
func (m *Metrics) ObserveStatement(kind string, elapsed time.Duration, err error) {
	m.statements.WithLabelValues(kind).Inc()
	m.statementDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err != nil {
		m.statementErrors.WithLabelValues(kind).Inc()
	}
}

// SessionsPruned adds n removed sessions.
func (m *Metrics) SessionsPruned(n int64) {
	if n > 0 {
		m.sessionsPruned.Add(float64(n))
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

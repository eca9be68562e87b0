package metrics

import (
	"net/http"
	"time"
)

// MetricsCollector is the contract the HTTP middleware needs from a metrics
// client: instrument construction, default-metric sampling and exposition.
//
// It is implemented by *Registry and does not expose Prometheus types, so
// tests can substitute a fake.
type MetricsCollector interface {
	// CreateCounter registers a counter vector. Registering a name twice
	// fails with ErrAlreadyRegistered.
	CreateCounter(name, help string, labels []string) (Counter, error)

	// CreateHistogram registers a histogram vector; nil buckets selects the
	// Prometheus default buckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) (Histogram, error)

	// EnableDefaultMetrics starts exposing runtime and process metrics,
	// sampled at most once per delay.
	EnableDefaultMetrics(delay time.Duration) error

	// Render returns the current exposition text.
	Render() (string, error)

	// Handler serves the exposition text over HTTP.
	Handler() http.Handler
}

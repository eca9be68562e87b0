package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter represents a cumulative metric that only increases.
//
// This interface abstracts the underlying Prometheus CounterVec implementation.
type Counter interface {
	// WithLabelValues returns the Counter for the given label values.
	// The number of label values must match the number of labels defined
	// when the counter was created.
	WithLabelValues(lvs ...string) Counter

	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter. The value must be >= 0.
	Add(val float64)
}

// Histogram tracks the distribution of observations such as request durations.
//
// This interface abstracts the underlying Prometheus HistogramVec implementation.
type Histogram interface {
	// WithLabelValues returns the Observer for the given label values.
	WithLabelValues(lvs ...string) Observer

	// Observe adds a single observation to the histogram.
	Observe(val float64)
}

// Observer is the labeled form of a Histogram.
type Observer interface {
	Observe(val float64)
}

// counterVec wraps prometheus.CounterVec to implement the Counter interface.
type counterVec struct {
	vec *prometheus.CounterVec
}

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return &counter{metric: c.vec.WithLabelValues(lvs...)}
}

func (c *counterVec) Inc() {
	c.vec.WithLabelValues().Inc()
}

func (c *counterVec) Add(val float64) {
	c.vec.WithLabelValues().Add(val)
}

// counter wraps prometheus.Counter.
type counter struct {
	metric prometheus.Counter
}

// WithLabelValues on an already-labeled counter returns the counter itself.
func (c *counter) WithLabelValues(lvs ...string) Counter {
	return c
}

func (c *counter) Inc() {
	c.metric.Inc()
}

func (c *counter) Add(val float64) {
	c.metric.Add(val)
}

// histogramVec wraps prometheus.HistogramVec to implement the Histogram interface.
type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h *histogramVec) WithLabelValues(lvs ...string) Observer {
	return h.vec.WithLabelValues(lvs...)
}

func (h *histogramVec) Observe(val float64) {
	h.vec.WithLabelValues().Observe(val)
}

package httpmetrics

import (
	"time"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
	"github.com/aalemi-dev/httpmetrics-lab/observability"
	"github.com/aalemi-dev/httpmetrics-lab/tracer"
)

// Names accepted in Options.Defaults. Each enables one instrument.
const (
	// MetricStatus enables the restify_status_codes counter.
	MetricStatus = "status"

	// MetricPathDuration enables the restify_path_duration histogram.
	MetricPathDuration = "pathDuration"

	// MetricPathCount enables the restify_path_count counter.
	MetricPathCount = "pathCount"
)

// Exposed metric names.
const (
	StatusCodesMetricName  = "restify_status_codes"
	PathDurationMetricName = "restify_path_duration"
	PathCountMetricName    = "restify_path_count"
)

const (
	// DefaultRoute is the exposition route used when Options.Route is nil.
	DefaultRoute = "/metrics"

	// DefaultPromDefaultDelay is the default-metrics sampling delay in milliseconds.
	DefaultPromDefaultDelay = 1000

	// MinPromDefaultDelay is the smallest accepted sampling delay in milliseconds.
	MinPromDefaultDelay = 1000

	// DefaultMaxPathsToCount is the default ceiling of distinct path labels
	// admitted into restify_path_count.
	DefaultMaxPathsToCount = 100
)

// DefaultMetrics returns the instruments enabled when Options.Defaults is nil.
func DefaultMetrics() []string {
	return []string{MetricStatus, MetricPathDuration, MetricPathCount}
}

// Options is the user-facing, partial middleware configuration. Every zero
// field falls back to its default.
//
// Example:
//
//	mw, err := httpmetrics.New(httpmetrics.Options{
//	    Route:           httpmetrics.Ptr("/internal/metrics"),
//	    Exclude:         []string{"/healthz", "/readyz"},
//	    MaxPathsToCount: httpmetrics.Ptr(500),
//	})
type Options struct {
	// Route is the path the exposition text is served on. Nil selects
	// DefaultRoute; an empty string is invalid.
	Route *string

	// DisableRoute turns the exposition route off. It cannot be combined
	// with Route.
	DisableRoute bool

	// Defaults lists the instruments to create: MetricStatus,
	// MetricPathDuration and MetricPathCount. Unknown names are accepted and
	// create nothing. Nil selects DefaultMetrics; an empty, non-nil slice
	// creates no instrument.
	Defaults []string

	// Exclude selects the path labels that are never measured. Accepted values:
	//   - nil or false:           nothing is excluded
	//   - string:                 a single exact label
	//   - []string or []any:      exact labels; non-string entries never match
	//   - *regexp.Regexp:         labels matching the pattern
	//   - ExcludeFunc, func(string) bool: labels for which the predicate returns true
	//   - ExcludeRule:            an already normalized rule
	Exclude any

	// PromDefaultDelay is the sampling delay of the runtime and process
	// metrics, in milliseconds. Nil selects DefaultPromDefaultDelay.
	PromDefaultDelay *int

	// MaxPathsToCount is the ceiling of distinct path labels admitted into
	// restify_path_count. Zero means unbounded. Nil selects
	// DefaultMaxPathsToCount.
	MaxPathsToCount *int

	// Registry receives the instruments. Nil selects metrics.Default.
	Registry metrics.MetricsCollector

	// Router resolves the declared route of a request for Middleware.Wrap.
	// Nil treats every request as unmatched.
	Router Router

	// Logger receives debug and warning entries. Nil disables logging.
	Logger logger.Logger

	// Tracer, when set, opens one span around the gating phase of each request.
	Tracer tracer.Tracer

	// Observer, when set, is notified of every measurement decision.
	Observer observability.Observer
}

// Config is the validated, immutable configuration of one Middleware.
type Config struct {
	// Route is the exposition route; empty when RouteEnabled is false.
	Route        string
	RouteEnabled bool

	// Defaults is the deduplicated list of enabled instrument names.
	Defaults []string

	Exclude ExcludeRule

	PromDefaultDelay time.Duration

	// MaxPathsToCount is the admission ceiling, 0 meaning unbounded.
	MaxPathsToCount int
}

// Enabled reports whether the named instrument is part of Defaults.
func (c Config) Enabled(name string) bool {
	for _, d := range c.Defaults {
		if d == name {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to v.
//
// Example:
//
//	opts := httpmetrics.Options{Route: httpmetrics.Ptr("/prom"), MaxPathsToCount: httpmetrics.Ptr(0)}
func Ptr[T any](v T) *T {
	return &v
}

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the metrics-client used by the HTTP middleware. It owns a
// Prometheus registerer/gatherer pair, builds instruments on it, samples the
// default process metrics and renders the exposition text.
type Registry struct {
	// Server is the standalone exposition server, nil unless Config.Address
	// is set to a non-empty value.
	Server *http.Server

	// Prometheus is the underlying registry, nil for the process-wide
	// registry returned by Default.
	Prometheus *prometheus.Registry

	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	// builtinDefaults is true when the gatherer already exposes the Go and
	// process collectors (the Prometheus default registry does).
	builtinDefaults bool

	defaultsMu      sync.Mutex
	defaultsEnabled bool
}

// NewRegistry returns a Registry backed by a fresh Prometheus registry.
//
// Example:
//
//	reg := metrics.NewRegistry(metrics.Config{ServiceName: "orders-api"})
//	mw, err := httpmetrics.New(httpmetrics.Options{Registry: reg})
func NewRegistry(cfg Config) *Registry {
	promRegistry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = promRegistry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			promRegistry,
		)
	}

	r := &Registry{
		Prometheus: promRegistry,
		registerer: registerer,
		gatherer:   promRegistry,
	}

	if cfg.Address != nil && *cfg.Address != "" {
		path := cfg.Path
		if path == "" {
			path = DefaultExpositionPath
		}
		mux := http.NewServeMux()
		mux.Handle(path, r.Handler())
		r.Server = &http.Server{
			Addr:    *cfg.Address,
			Handler: mux,
		}
	}

	return r
}

// Default returns a Registry over prometheus.DefaultRegisterer and
// prometheus.DefaultGatherer. Instrument names are then unique per process:
// building a second middleware on it without unregistering the first one's
// instruments fails with ErrAlreadyRegistered.
func Default() *Registry {
	return &Registry{
		registerer:      prometheus.DefaultRegisterer,
		gatherer:        prometheus.DefaultGatherer,
		builtinDefaults: true,
	}
}

// Gatherer returns the gatherer backing the exposition output.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.gatherer
}

// Handler returns an HTTP handler serving the exposition text.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

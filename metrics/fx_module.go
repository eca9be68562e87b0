package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
)

// FXModule provides *Registry and the MetricsCollector interface, and runs
// the standalone exposition server (when configured) for the lifetime of the
// application.
//
// Dependencies required by this module:
// - A metrics.Config instance must be available in the dependency injection container
// - A *logger.LoggerClient instance
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		fx.Annotate(
			func(r *Registry) MetricsCollector { return r },
			fx.As(new(MetricsCollector)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the standalone exposition server on
// application start and shuts it down gracefully on stop. It does nothing
// when the Registry has no server.
func RegisterMetricsLifecycle(lc fx.Lifecycle, r *Registry, log *logger.LoggerClient) {
	if r.Server == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting metrics exposition server", nil, map[string]interface{}{
					"address": r.Server.Addr,
				})

				if err := r.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("Error starting metrics exposition server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down metrics exposition server", nil, nil)
			if err := r.Server.Shutdown(ctx); err != nil {
				log.Error("Error shutting down metrics exposition server", err, nil)
			}
			return nil
		},
	})
}

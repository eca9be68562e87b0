package httpmetrics

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
	"github.com/aalemi-dev/httpmetrics-lab/observability"
	"github.com/aalemi-dev/httpmetrics-lab/tracer"
)

// FXModule provides *Middleware built from an httpmetrics.Options value and
// whatever collaborators the container holds.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    httpmetrics.FXModule,
//	    fx.Provide(func() httpmetrics.Options { return httpmetrics.Options{} }),
//	)
var FXModule = fx.Module("httpmetrics",
	fx.Provide(NewMiddlewareWithDI),
	fx.Invoke(RegisterLifecycle),
)

// MiddlewareParams are the injected dependencies of NewMiddlewareWithDI.
// Collaborators found in the container take precedence over the ones set
// in Options.
type MiddlewareParams struct {
	fx.In

	Options  Options
	Registry metrics.MetricsCollector `optional:"true"`
	Router   Router                   `optional:"true"`
	Logger   logger.Logger            `optional:"true"`
	Tracer   tracer.Tracer            `optional:"true"`
	Observer observability.Observer   `optional:"true"`
}

func NewMiddlewareWithDI(params MiddlewareParams) (*Middleware, error) {
	opts := params.Options

	if params.Registry != nil {
		opts.Registry = params.Registry
	}
	if params.Router != nil {
		opts.Router = params.Router
	}
	if params.Logger != nil {
		opts.Logger = params.Logger
	}
	if params.Tracer != nil {
		opts.Tracer = params.Tracer
	}
	if params.Observer != nil {
		opts.Observer = params.Observer
	}

	return New(opts)
}

// RegisterLifecycle logs the effective configuration once the application starts.
func RegisterLifecycle(lc fx.Lifecycle, mw *Middleware) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			mw.log.InfoWithContext(ctx, "http metrics middleware ready", nil, map[string]interface{}{
				"route":              mw.config.Route,
				"route_enabled":      mw.config.RouteEnabled,
				"defaults":           mw.config.Defaults,
				"max_paths_to_count": mw.config.MaxPathsToCount,
			})
			return nil
		},
	})
}

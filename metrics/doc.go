// Package metrics is the Prometheus-backed metrics client used by the HTTP
// metrics middleware.
//
// A Registry owns a Prometheus registerer/gatherer pair and exposes the four
// operations the middleware needs:
//
//   - CreateCounter / CreateHistogram register instruments and report
//     duplicate names as ErrAlreadyRegistered instead of panicking
//   - EnableDefaultMetrics adds Go runtime and process collectors, each
//     re-sampled at most once per configured delay
//   - Render encodes the current state in the text exposition format
//   - Handler serves the same output over HTTP
//
// # Registries
//
// NewRegistry builds a private registry, which is what tests and most
// services want. Default wraps the process-wide Prometheus registry; there,
// instrument names are global and the runtime collectors are already present.
//
//	reg := metrics.NewRegistry(metrics.Config{ServiceName: "orders-api"})
//	if err := reg.EnableDefaultMetrics(time.Second); err != nil {
//		return err
//	}
//	text, _ := reg.Render()
//
// # Standalone server
//
// Setting Config.Address starts a dedicated exposition server through
// FXModule, independent of any route served by the middleware:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() logger.Config { return logger.Config{Level: logger.Info} }),
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: metrics.Ptr(":9091")}
//		}),
//	)
package metrics

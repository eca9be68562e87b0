package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/aalemi-dev/httpmetrics-lab/httpmetrics"
	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
	"github.com/aalemi-dev/httpmetrics-lab/tracer"
)

var serveFlags struct {
	listen        string
	metricsListen string
	logLevel      string
	serviceName   string
	exportTraces  bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo API",
	Long: `Start the demo API with the httpmetrics middleware in front of it.

Routes:
  GET /users/{id}   returns the id
  GET /slow         sleeps 250ms
  GET /healthz      liveness probe

Examples:
  httpmetrics-demo serve --listen :8080
  httpmetrics-demo serve --metrics-listen :9091 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cfgFile)
		if err != nil {
			return err
		}
		fx.New(appOptions(opts)).Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", ":8080", "API listen address")
	serveCmd.Flags().StringVar(&serveFlags.metricsListen, "metrics-listen", "", "optional standalone metrics listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", logger.Info, "log level (debug, info, warning, error)")
	serveCmd.Flags().StringVar(&serveFlags.serviceName, "service-name", "httpmetrics-demo", "service label and trace resource name")
	serveCmd.Flags().BoolVar(&serveFlags.exportTraces, "export-traces", false, "export gating spans over OTLP/HTTP")
}

// appOptions assembles the fx application serving the demo API.
func appOptions(opts httpmetrics.Options) fx.Option {
	return fx.Options(
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		fx.Supply(
			logger.Config{
				Level:         serveFlags.logLevel,
				EnableTracing: true,
				ServiceName:   serveFlags.serviceName,
			},
			metrics.Config{
				Address:     metrics.Ptr(serveFlags.metricsListen),
				ServiceName: serveFlags.serviceName,
			},
			tracer.Config{
				ServiceName:  serveFlags.serviceName,
				AppEnv:       "demo",
				EnableExport: serveFlags.exportTraces,
			},
			opts,
		),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		httpmetrics.FXModule,
		fx.Provide(
			newRouter,
			func(r *mux.Router) httpmetrics.Router { return httpmetrics.MuxRouter{Router: r} },
		),
		fx.Invoke(registerServer),
	)
}

func newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprintf(w, "user %s\n", mux.Vars(req)["id"])
	}).Methods(http.MethodGet)
	r.HandleFunc("/slow", func(w http.ResponseWriter, req *http.Request) {
		select {
		case <-time.After(250 * time.Millisecond):
		case <-req.Context().Done():
		}
		fmt.Fprintln(w, "done")
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func registerServer(lc fx.Lifecycle, r *mux.Router, mw *httpmetrics.Middleware, log *logger.LoggerClient) {
	srv := &http.Server{
		Addr:              serveFlags.listen,
		Handler:           mw.Wrap(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			log.Info("Starting demo API", nil, map[string]interface{}{
				"address": ln.Addr().String(),
			})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Demo API stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down demo API", nil, nil)
			return srv.Shutdown(ctx)
		},
	})
}

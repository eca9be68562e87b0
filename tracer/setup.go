package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName is the tracer name spans are opened under.
const instrumentationName = "github.com/aalemi-dev/httpmetrics-lab"

// TracerClient wraps an OpenTelemetry TracerProvider.
// It implements the Tracer interface and is safe for concurrent use.
type TracerClient struct {
	tracer *trace.TracerProvider
}

// NewClient creates a TracerClient, installs it as the global OpenTelemetry
// provider and sets the W3C trace-context and baggage propagators.
//
// Example:
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "orders-api", AppEnv: "production"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mw, err := httpmetrics.New(httpmetrics.Options{Tracer: tr})
func NewClient(cfg Config) (*TracerClient, error) {
	return newClientWithContext(context.Background(), cfg)
}

func newClientWithContext(ctx context.Context, cfg Config) (*TracerClient, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OTLP exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &TracerClient{tracer: tp}, nil
}

// NewClientFromProvider wraps an existing provider without touching the
// global OpenTelemetry state.
func NewClientFromProvider(tp *trace.TracerProvider) *TracerClient {
	return &TracerClient{tracer: tp}
}

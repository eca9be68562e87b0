package tracer

import (
	"context"
)

// Tracer opens spans. The HTTP metrics middleware uses it to wrap the
// synchronous gating phase of every request.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span is the subset of an OpenTelemetry span the middleware records on.
type Span interface {
	End()

	// SetAttributes converts string, int, int64, float64 and bool values to
	// typed attributes; other values are stringified.
	SetAttributes(attrs map[string]interface{})

	RecordError(err error)
}

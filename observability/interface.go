package observability

import "time"

// Observer receives the lifecycle events of the HTTP metrics middleware.
// Implementations must be safe for concurrent use: events are emitted from
// request goroutines.
type Observer interface {
	// ObserveOperation is called when a middleware operation completes.
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts an ordinary function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Operations emitted by the HTTP metrics middleware.
const (
	// OperationExposed is emitted when the exposition route served a scrape.
	OperationExposed = "exposed"

	// OperationExcluded is emitted when the exclusion rule matched the path label.
	OperationExcluded = "excluded"

	// OperationRejected is emitted when the path label was refused by the
	// cardinality ceiling.
	OperationRejected = "rejected"

	// OperationRecorded is emitted when a completed request was written to
	// the metric instruments.
	OperationRecorded = "recorded"
)

// OperationContext describes one middleware operation.
type OperationContext struct {
	// Component identifies the emitter, "httpmetrics" for the middleware.
	Component string

	// Operation is one of the Operation* constants.
	Operation string

	// Resource is the path label of the request, e.g. "/users/:id".
	Resource string

	// SubResource is the HTTP method.
	SubResource string

	// Duration is the gating time for excluded and rejected requests, and
	// the full request duration for recorded ones.
	Duration time.Duration

	// Error is the failure encountered by the operation, if any.
	Error error

	// Size is the exposition body length in bytes for exposed events, zero
	// otherwise.
	Size int64

	// Metadata provides additional operation-specific information (optional).
	Metadata map[string]interface{}
}

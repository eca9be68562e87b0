// Package observability defines the event hook of the HTTP metrics middleware.
//
// The middleware works without an observer. When one is configured it is
// told about every decision the middleware takes on a request: whether the
// exposition route answered it, whether the exclusion rule dropped it,
// whether the cardinality ceiling refused its path label, and when the
// completed request was recorded.
//
// # Usage
//
//	obs := observability.ObserverFunc(func(op observability.OperationContext) {
//	    if op.Operation == observability.OperationRejected {
//	        log.Printf("path %s over the cardinality ceiling", op.Resource)
//	    }
//	})
//
//	mw, err := httpmetrics.New(httpmetrics.Options{Observer: obs})
//
// # FX Integration
//
//	fx.Provide(
//	    fx.Annotate(
//	        NewAuditObserver,
//	        fx.As(new(observability.Observer)),
//	    ),
//	)
//
// # OperationContext Fields
//
//   - Component:   "httpmetrics"
//   - Operation:   exposed, excluded, rejected or recorded
//   - Resource:    path label
//   - SubResource: HTTP method
//   - Duration:    gating or request duration
//   - Size:        exposition body length of exposed events
//   - Metadata:    status_code, matched and path_counted of recorded events
package observability

package httpmetrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
	"github.com/aalemi-dev/httpmetrics-lab/observability"
	"github.com/aalemi-dev/httpmetrics-lab/tracer"
)

const component = "httpmetrics"

// gateSpanName is the span opened around the gating phase of a request.
const gateSpanName = "httpmetrics.gate"

// Middleware measures HTTP requests into restify_status_codes,
// restify_path_duration and restify_path_count.
//
// Every request goes through a synchronous gating phase before reaching the
// next handler: its path label is resolved, the exclusion rule is consulted
// and, for restify_path_count, the label must be admitted by the
// cardinality ceiling. The instruments themselves are updated once the
// response is finished.
//
// A Middleware owns its exclusion cache and admitted path set; building a
// new one starts both empty. It is safe for concurrent use.
type Middleware struct {
	config   Config
	registry metrics.MetricsCollector
	router   Router
	log      logger.Logger
	tracer   tracer.Tracer
	observer observability.Observer

	exclusions *exclusionEvaluator
	paths      *PathLimit
	recorder   *recorder

	now func() time.Time
}

// New validates opts, enables the sampled default metrics and creates the
// enabled instruments.
//
// Configuration errors match ErrInvalidConfiguration. Creating a second
// Middleware on a registry that still holds the instruments of the first
// fails with metrics.ErrAlreadyRegistered.
//
// Example:
//
//	mw, err := httpmetrics.New(httpmetrics.Options{
//	    Router:  httpmetrics.MuxRouter{Router: r},
//	    Exclude: regexp.MustCompile(`^/debug/`),
//	})
//	if err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", mw.Wrap(r))
func New(opts Options) (*Middleware, error) {
	cfg, err := Validate(opts)
	if err != nil {
		return nil, err
	}

	var log logger.Logger = logger.NewNopLoggerClient()
	if opts.Logger != nil {
		log = opts.Logger
	}

	var registry metrics.MetricsCollector
	if opts.Registry != nil {
		registry = opts.Registry
	} else {
		registry = metrics.Default()
	}

	var observer observability.Observer = observability.NewNoOpObserver()
	if opts.Observer != nil {
		observer = opts.Observer
	}

	log.Debug("final configuration", nil, map[string]interface{}{
		"route":              cfg.Route,
		"route_enabled":      cfg.RouteEnabled,
		"defaults":           cfg.Defaults,
		"exclude":            cfg.Exclude.Kind.String(),
		"prom_default_delay": cfg.PromDefaultDelay.String(),
		"max_paths_to_count": cfg.MaxPathsToCount,
	})

	if err := registry.EnableDefaultMetrics(cfg.PromDefaultDelay); err != nil {
		return nil, fmt.Errorf("enable default metrics: %w", err)
	}

	rec, err := newRecorder(registry, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Middleware{
		config:     cfg,
		registry:   registry,
		router:     opts.Router,
		log:        log,
		tracer:     opts.Tracer,
		observer:   observer,
		exclusions: newExclusionEvaluator(cfg.Exclude, log),
		paths:      NewPathLimit(cfg.MaxPathsToCount),
		recorder:   rec,
		now:        time.Now,
	}, nil
}

// Config returns the validated configuration.
func (m *Middleware) Config() Config {
	cfg := m.config
	cfg.Defaults = append([]string(nil), m.config.Defaults...)
	return cfg
}

// AdmittedPaths returns the number of path labels admitted into
// restify_path_count so far.
func (m *Middleware) AdmittedPaths() int {
	return m.paths.Count()
}

// Wrap returns next instrumented. Requests to the exposition route are
// answered directly and never reach next. Routes are resolved with
// Options.Router.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.IsExpositionPath(r.URL.Path) {
			m.ServeExposition(w, r)
			return
		}

		route, matched := m.lookup(r)
		t := m.Track(r, route, matched)
		if t == nil {
			next.ServeHTTP(w, r)
			return
		}

		rw := newResponseWriter(w)
		completed := false
		defer func() {
			// Panic or runtime.Goexit in next: finish before unwinding further.
			if !completed {
				t.Finish(rw.abortStatus())
			}
		}()

		next.ServeHTTP(rw, r)
		completed = true
		t.Finish(rw.statusCode)
	})
}

func (m *Middleware) lookup(r *http.Request) (Route, bool) {
	if m.router == nil {
		return Route{}, false
	}
	route, err := m.router.Lookup(r)
	if err != nil {
		if m.log.DebugEnabled() {
			m.log.DebugWithContext(r.Context(), "no route matched", err, map[string]interface{}{
				"path": r.URL.Path,
			})
		}
		return Route{}, false
	}
	return route, true
}

// Track runs the gating phase for r. matched tells whether route is the
// declared route r was dispatched to; when false the literal request path
// is the label.
//
// It returns nil when the label is excluded. Otherwise the caller must call
// Finish on the returned Tracker once the response is complete.
func (m *Middleware) Track(r *http.Request, route Route, matched bool) *Tracker {
	gateStart := m.now()

	label := r.URL.Path
	if matched {
		label = route.Label()
	}

	ctx := r.Context()
	var span tracer.Span
	if m.tracer != nil {
		ctx, span = m.tracer.StartSpan(ctx, gateSpanName)
		defer span.End()
	}

	t := m.gate(ctx, label, r.Method, matched)

	if span != nil {
		attrs := map[string]interface{}{
			"http.route":           label,
			"http.request.method":  r.Method,
			"httpmetrics.matched":  matched,
			"httpmetrics.measured": t != nil,
		}
		if t != nil {
			attrs["httpmetrics.path_counted"] = t.pathCounted
		}
		span.SetAttributes(attrs)
	}

	if m.log.DebugEnabled() {
		m.log.DebugWithContext(ctx, "finished gating", nil, map[string]interface{}{
			"path":     label,
			"method":   r.Method,
			"matched":  matched,
			"measured": t != nil,
			"took":     m.now().Sub(gateStart).String(),
		})
	}

	return t
}

func (m *Middleware) gate(ctx context.Context, label, method string, matched bool) *Tracker {
	start := m.now()

	if m.exclusions.IsExcluded(label) {
		m.observe(observability.OperationContext{
			Operation:   observability.OperationExcluded,
			Resource:    label,
			SubResource: method,
			Duration:    m.now().Sub(start),
		})
		return nil
	}

	t := &Tracker{
		m:       m,
		label:   label,
		method:  method,
		matched: matched,
	}

	if m.recorder.status != nil {
		t.listeners = append(t.listeners, completionListener{
			name: StatusCodesMetricName,
			fn: func(status int, _ time.Duration) {
				m.recorder.incStatus(status)
			},
		})
	}

	// Unmatched requests carry free-form paths and are kept out of the histogram.
	if m.recorder.duration != nil && matched {
		t.listeners = append(t.listeners, completionListener{
			name: PathDurationMetricName,
			fn: func(status int, elapsed time.Duration) {
				m.recorder.observeDuration(label, method, status, elapsed)
			},
		})
	}

	if m.recorder.count != nil {
		if m.paths.TryAdmit(label) {
			t.pathCounted = true
			t.listeners = append(t.listeners, completionListener{
				name: PathCountMetricName,
				fn: func(status int, _ time.Duration) {
					m.recorder.incPath(label, method, status)
				},
			})
		} else {
			m.log.DebugWithContext(ctx, "path label over the cardinality ceiling", nil, map[string]interface{}{
				"path":               label,
				"max_paths_to_count": m.config.MaxPathsToCount,
			})
			m.observe(observability.OperationContext{
				Operation:   observability.OperationRejected,
				Resource:    label,
				SubResource: method,
				Duration:    m.now().Sub(start),
			})
		}
	}

	t.start = m.now()
	return t
}

func (m *Middleware) observe(op observability.OperationContext) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("observer failed", fmt.Errorf("%v", r), map[string]interface{}{
				"operation": op.Operation,
				"path":      op.Resource,
			})
		}
	}()
	op.Component = component
	m.observer.ObserveOperation(op)
}

// completionListener is one metric update run when the response finishes.
type completionListener struct {
	name string
	fn   func(status int, elapsed time.Duration)
}

// Tracker holds the completion listeners of one measured request.
type Tracker struct {
	m           *Middleware
	label       string
	method      string
	matched     bool
	pathCounted bool
	start       time.Time

	listeners []completionListener
	once      sync.Once
}

// Label returns the path label the request is measured under.
func (t *Tracker) Label() string {
	return t.label
}

// Finish runs the completion listeners with the final status code. Only the
// first call has an effect; calling it on a nil Tracker does nothing. A
// failing listener is logged and does not prevent the others from running.
func (t *Tracker) Finish(status int) {
	if t == nil {
		return
	}
	t.once.Do(func() {
		elapsed := t.m.now().Sub(t.start)
		for _, l := range t.listeners {
			t.m.runListener(l, t.label, status, elapsed)
		}

		if t.m.log.DebugEnabled() {
			t.m.log.Debug("request recorded", nil, map[string]interface{}{
				"path":        t.label,
				"method":      t.method,
				"status_code": status,
				"listeners":   len(t.listeners),
			})
		}

		t.m.observe(observability.OperationContext{
			Operation:   observability.OperationRecorded,
			Resource:    t.label,
			SubResource: t.method,
			Duration:    elapsed,
			Metadata: map[string]interface{}{
				"status_code":  status,
				"matched":      t.matched,
				"path_counted": t.pathCounted,
			},
		})
	})
}

func (m *Middleware) runListener(l completionListener, label string, status int, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("completion listener failed", fmt.Errorf("%v", r), map[string]interface{}{
				"listener":    l.name,
				"path":        label,
				"status_code": status,
			})
		}
	}()
	l.fn(status, elapsed)
}

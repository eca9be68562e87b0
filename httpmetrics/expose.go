package httpmetrics

import (
	"io"
	"net/http"

	"github.com/prometheus/common/expfmt"

	"github.com/aalemi-dev/httpmetrics-lab/observability"
)

// IsExpositionPath reports whether path is the configured exposition route.
// It is always false when the route is disabled.
func (m *Middleware) IsExpositionPath(path string) bool {
	return m.config.RouteEnabled && path == m.config.Route
}

// ServeExposition answers with the current exposition text. Requests served
// here are not measured.
func (m *Middleware) ServeExposition(w http.ResponseWriter, r *http.Request) {
	body, err := m.registry.Render()
	if err != nil {
		m.log.ErrorWithContext(r.Context(), "failed to render metrics", err, map[string]interface{}{
			"route": m.config.Route,
		})
		http.Error(w, "failed to render metrics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		m.log.DebugWithContext(r.Context(), "failed to write exposition", err, nil)
	}

	m.observe(observability.OperationContext{
		Operation:   observability.OperationExposed,
		Resource:    m.config.Route,
		SubResource: r.Method,
		Size:        int64(len(body)),
	})
}

// Handler returns a standalone exposition handler backed by the same
// registry, for mounting on a separate listener or route.
func (m *Middleware) Handler() http.Handler {
	return m.registry.Handler()
}

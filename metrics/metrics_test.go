package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/httpmetrics-lab/metrics"
)

func TestNewRegistry_NoServerByDefault(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})
	assert.Nil(t, reg.Server)
	assert.NotNil(t, reg.Prometheus)
}

func TestNewRegistry_StandaloneServer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		address    *string
		wantServer bool
	}{
		{"nil address", nil, false},
		{"empty address", metrics.Ptr(""), false},
		{"explicit address", metrics.Ptr(":0"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := metrics.NewRegistry(metrics.Config{Address: tt.address})
			assert.Equal(t, tt.wantServer, reg.Server != nil)
		})
	}
}

func TestCreateCounter_RenderedInExposition(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})

	c, err := reg.CreateCounter("restify_status_codes", "Number of response for each HTTP status code.", []string{"status_code"})
	require.NoError(t, err)
	c.WithLabelValues("200").Inc()
	c.WithLabelValues("200").Add(2)

	text, err := reg.Render()
	require.NoError(t, err)
	assert.Contains(t, text, "# TYPE restify_status_codes counter")
	assert.Contains(t, text, `restify_status_codes{status_code="200"} 3`)
}

func TestCreateHistogram_DefaultBuckets(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})

	h, err := reg.CreateHistogram("restify_path_duration", "duration", []string{"path", "status_code", "method"}, nil)
	require.NoError(t, err)
	h.WithLabelValues("/users/:id", "200", "GET").Observe(0.02)

	text, err := reg.Render()
	require.NoError(t, err)
	assert.Contains(t, text, "# TYPE restify_path_duration histogram")
	assert.Contains(t, text, `restify_path_duration_count{method="GET",path="/users/:id",status_code="200"} 1`)
	assert.Contains(t, text, `le="10"`)
}

func TestCreateCounter_DuplicateName(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})

	_, err := reg.CreateCounter("dup_total", "help", []string{"a"})
	require.NoError(t, err)

	_, err = reg.CreateCounter("dup_total", "help", []string{"a"})
	assert.ErrorIs(t, err, metrics.ErrAlreadyRegistered)
}

func TestCreateCounter_DuplicateLabelNames(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})

	_, err := reg.CreateCounter("dup_labels_total", "help", []string{"path", "path"})
	assert.ErrorIs(t, err, metrics.ErrInvalidMetric)
}

func TestServiceNameLabel(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{ServiceName: "orders-api"})

	c, err := reg.CreateCounter("svc_total", "help", []string{"status_code"})
	require.NoError(t, err)
	c.WithLabelValues("404").Inc()

	text, err := reg.Render()
	require.NoError(t, err)
	assert.Contains(t, text, `svc_total{service="orders-api",status_code="404"} 1`)
}

func TestEnableDefaultMetrics(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})

	require.NoError(t, reg.EnableDefaultMetrics(time.Second))
	// Second call must not try to register the collectors again.
	require.NoError(t, reg.EnableDefaultMetrics(2*time.Second))

	text, err := reg.Render()
	require.NoError(t, err)
	assert.Contains(t, text, "go_goroutines")
}

func TestEnableDefaultMetrics_DelayTooShort(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})
	assert.ErrorIs(t, reg.EnableDefaultMetrics(500*time.Millisecond), metrics.ErrInvalidMetric)
}

func TestDefaultRegistry_DefaultMetricsNoop(t *testing.T) {
	t.Parallel()
	reg := metrics.Default()
	assert.NoError(t, reg.EnableDefaultMetrics(time.Second))
	assert.NotNil(t, reg.Gatherer())
}

func TestHandler_ServesExposition(t *testing.T) {
	t.Parallel()
	reg := metrics.NewRegistry(metrics.Config{})
	c, err := reg.CreateCounter("handler_total", "help", nil)
	require.NoError(t, err)
	c.Inc()

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "handler_total 1"))
}

func TestRegistryImplementsCollector(t *testing.T) {
	t.Parallel()
	var _ metrics.MetricsCollector = metrics.NewRegistry(metrics.Config{})
}

package httpmetrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aalemi-dev/httpmetrics-lab/logger"
	"github.com/aalemi-dev/httpmetrics-lab/metrics"
)

const (
	statusCodesHelp  = "Number of response for each HTTP status code."
	pathDurationHelp = "Histogram of response time in seconds for each request path / status code"
	pathCountHelp    = "Number of calls to each path"
)

// recorder holds the enabled instruments. A nil field means the instrument
// is disabled.
type recorder struct {
	status   metrics.Counter
	duration metrics.Histogram
	count    metrics.Counter
}

func newRecorder(mc metrics.MetricsCollector, cfg Config, log logger.Logger) (*recorder, error) {
	rec := &recorder{}
	var err error

	if cfg.Enabled(MetricStatus) {
		log.Debug("creating instrument", nil, map[string]interface{}{"name": StatusCodesMetricName})
		rec.status, err = mc.CreateCounter(StatusCodesMetricName, statusCodesHelp, []string{"status_code"})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", StatusCodesMetricName, err)
		}
	}

	if cfg.Enabled(MetricPathDuration) {
		log.Debug("creating instrument", nil, map[string]interface{}{"name": PathDurationMetricName})
		rec.duration, err = mc.CreateHistogram(PathDurationMetricName, pathDurationHelp,
			[]string{"path", "status_code", "method"}, nil)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", PathDurationMetricName, err)
		}
	}

	if cfg.Enabled(MetricPathCount) {
		log.Debug("creating instrument", nil, map[string]interface{}{"name": PathCountMetricName})
		rec.count, err = mc.CreateCounter(PathCountMetricName, pathCountHelp,
			[]string{"path", "status_code", "method"})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", PathCountMetricName, err)
		}
	}

	return rec, nil
}

func (r *recorder) incStatus(status int) {
	r.status.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (r *recorder) observeDuration(path, method string, status int, elapsed time.Duration) {
	r.duration.WithLabelValues(path, strconv.Itoa(status), method).Observe(elapsed.Seconds())
}

func (r *recorder) incPath(path, method string, status int) {
	r.count.WithLabelValues(path, strconv.Itoa(status), method).Inc()
}

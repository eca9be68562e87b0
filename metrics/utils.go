package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// CreateCounter creates a counter vector and registers it.
//
// Example:
//
//	status, err := reg.CreateCounter("restify_status_codes",
//	    "Number of response for each HTTP status code.", []string{"status_code"})
//	status.WithLabelValues("200").Inc()
func (r *Registry) CreateCounter(name, help string, labels []string) (Counter, error) {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	if err := r.registerer.Register(vec); err != nil {
		return nil, translateRegisterError(name, err)
	}
	return &counterVec{vec: vec}, nil
}

// CreateHistogram creates a histogram vector and registers it. A nil buckets
// slice selects prometheus.DefBuckets.
func (r *Registry) CreateHistogram(name, help string, labels []string, buckets []float64) (Histogram, error) {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
	if err := r.registerer.Register(vec); err != nil {
		return nil, translateRegisterError(name, err)
	}
	return &histogramVec{vec: vec}, nil
}

// Render gathers every registered metric and encodes it in the Prometheus
// text exposition format.
func (r *Registry) Render() (string, error) {
	families, err := r.gatherer.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), nil
}

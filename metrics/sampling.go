package metrics

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// MinSamplingDelay is the smallest delay accepted by EnableDefaultMetrics.
const MinSamplingDelay = time.Second

// EnableDefaultMetrics registers the Go runtime and process collectors, each
// re-sampled at most once per delay. Scrapes in between are served from the
// previous sample.
//
// Calling it again, or calling it on a Registry whose gatherer already
// exposes those collectors (see Default), is a no-op.
func (r *Registry) EnableDefaultMetrics(delay time.Duration) error {
	if delay < MinSamplingDelay {
		return fmt.Errorf("%w: default metrics delay %s is below %s", ErrInvalidMetric, delay, MinSamplingDelay)
	}

	r.defaultsMu.Lock()
	defer r.defaultsMu.Unlock()

	if r.defaultsEnabled || r.builtinDefaults {
		return nil
	}

	defaults := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range defaults {
		err := r.registerer.Register(newSampledCollector(c, delay))
		var are prometheus.AlreadyRegisteredError
		if err != nil && !errors.As(err, &are) {
			return fmt.Errorf("register default metrics: %w", err)
		}
	}

	r.defaultsEnabled = true
	return nil
}

// sampledCollector caches the output of an inner collector for delay.
type sampledCollector struct {
	inner prometheus.Collector
	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	sampled time.Time
	cache   []prometheus.Metric
}

func newSampledCollector(inner prometheus.Collector, delay time.Duration) *sampledCollector {
	return &sampledCollector{
		inner: inner,
		delay: delay,
		now:   time.Now,
	}
}

// Describe forwards the inner descriptors so the registry sees the same
// collector identity as the unwrapped collector.
func (s *sampledCollector) Describe(ch chan<- *prometheus.Desc) {
	s.inner.Describe(ch)
}

func (s *sampledCollector) Collect(ch chan<- prometheus.Metric) {
	s.mu.Lock()
	now := s.now()
	if s.cache == nil || now.Sub(s.sampled) >= s.delay {
		s.cache = s.sample()
		s.sampled = now
	}
	cache := s.cache
	s.mu.Unlock()

	for _, m := range cache {
		ch <- m
	}
}

func (s *sampledCollector) sample() []prometheus.Metric {
	out := make(chan prometheus.Metric)
	go func() {
		s.inner.Collect(out)
		close(out)
	}()

	samples := make([]prometheus.Metric, 0, 64)
	for m := range out {
		samples = append(samples, m)
	}
	return samples
}

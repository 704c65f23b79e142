package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option customises a Manager before its collectors are registered.
type Option func(*Manager)

// WithNamespace prefixes every series, "coursebook" by default. Empty keeps the default.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the middle name segment, "catalog" by default.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets replaces the millisecond buckets shared by the resolve,
// search, notify, queue wait and HTTP latency histograms. Nil keeps the defaults.
func WithHistogramBuckets(bucketsMS []float64) Option {
	return func(m *Manager) {
		if len(bucketsMS) > 0 {
			m.histogramBuckets = bucketsMS
		}
	}
}

// WithMetricsEnabled turns recording off while keeping collectors registered,
// so /metrics still answers.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithPrometheusRegistry registers collectors on r instead of the default registerer.
func WithPrometheusRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

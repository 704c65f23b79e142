package repository

import "github.com/okian/coursebook/pkg/logger"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *MemStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics publishes per-category course counts after a load.
func WithMetrics(enabled bool) Option {
	return func(s *MemStore) {
		s.metrics = enabled
	}
}

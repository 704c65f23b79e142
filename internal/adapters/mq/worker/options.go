// Package worker delivers queued enrollment notifications.
package worker

import (
	"context"
	"time"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
)

// FailureHandler is called after a notification could not be delivered.
type FailureHandler func(ctx context.Context, n model.Notification, err error)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFailureHandler sets the callback for failed deliveries.
func WithFailureHandler(h FailureHandler) Option {
	return func(w *InMemoryWorker) {
		if h != nil {
			w.onFailure = h
		}
	}
}

// WithDeliveryTimeout bounds each delivery.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(w *InMemoryWorker) {
		if d > 0 {
			w.timeout = d
		}
	}
}

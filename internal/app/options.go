package service

import (
	"time"

	"github.com/okian/coursebook/internal/adapters/notify"
	"github.com/okian/coursebook/internal/adapters/repository"
	"github.com/okian/coursebook/pkg/logger"
)

// Delivery modes.
const (
	DeliverySync  = "sync"
	DeliveryAsync = "async"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the catalog store. It is required.
func WithStore(s repository.Store) Option {
	return func(svc *Service) {
		svc.store = s
	}
}

// WithNotifier sets the enrollment notifier. The default logs notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDeliveryMode selects sync or async notification delivery.
func WithDeliveryMode(mode string) Option {
	return func(s *Service) {
		if mode == DeliverySync || mode == DeliveryAsync {
			s.mode = mode
		}
	}
}

// WithQueueSize sets the async notification queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of async delivery workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDedupeSize bounds the duplicate-submission guard.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithDedupeWindow forgets submissions older than window.
func WithDedupeWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.dedupeWindow = window
		}
	}
}

// WithSearchLimit caps search suggestions. Zero is unlimited.
func WithSearchLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.searchLimit = n
		}
	}
}

// WithNotifyTimeout bounds one delivery.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// WithRecipient sets the notification recipient.
func WithRecipient(addr string) Option {
	return func(s *Service) {
		s.recipient = addr
	}
}

// WithSender sets the notification sender.
func WithSender(addr string) Option {
	return func(s *Service) {
		s.sender = addr
	}
}

// WithReferenceFunc replaces the enrollment reference generator.
func WithReferenceFunc(f func() string) Option {
	return func(s *Service) {
		if f != nil {
			s.newReference = f
		}
	}
}

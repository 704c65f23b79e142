// Package queue buffers enrollment notifications for asynchronous delivery.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds n without blocking. It fails with ErrFull or ErrClosed.
	Enqueue(ctx context.Context, n model.Notification) error

	// Dequeue returns a channel of queued notifications. The channel is
	// closed once the queue is closed and drained, or ctx ends.
	Dequeue(ctx context.Context) <-chan model.Notification

	// Len returns the number of queued notifications.
	Len() int

	// Close stops accepting notifications. Queued ones can still be dequeued.
	Close() error
}

type envelope struct {
	n  model.Notification
	at time.Time
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	items    chan envelope
	capacity int

	mu     sync.RWMutex
	closed bool
}

var _ Queue = (*InMemoryQueue)(nil)

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.items = make(chan envelope, q.capacity)
	metrics.UpdateQueue(0, q.capacity)
	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, n model.Notification) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordError("queue", "closed")
		return ErrClosed
	}

	select {
	case q.items <- envelope{n: n, at: time.Now()}:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueue(len(q.items), q.capacity)
		return nil
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordError("queue", "context_cancelled")
		return fmt.Errorf("enqueue: %w", ctx.Err())
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordError("queue", "full")
		return ErrFull
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan model.Notification {
	out := make(chan model.Notification)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-q.items:
				if !ok {
					return
				}
				select {
				case out <- e.n:
					metrics.RecordQueueDequeue(float64(time.Since(e.at).Milliseconds()))
					metrics.UpdateQueue(len(q.items), q.capacity)
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len implements Queue.
func (q *InMemoryQueue) Len() int {
	return len(q.items)
}

// Cap returns the queue capacity.
func (q *InMemoryQueue) Cap() int {
	return q.capacity
}

// Close implements Queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	close(q.items)
	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

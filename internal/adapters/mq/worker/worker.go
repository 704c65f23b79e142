package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
	"github.com/okian/coursebook/pkg/metrics"
)

const (
	defaultWorkerCount     = 2
	defaultDeliveryTimeout = 15 * time.Second
	poolShutdownTimeout    = 30 * time.Second
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Queue defines how workers receive notifications.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Notification
}

// InMemoryWorker drains the queue into a Notifier.
type InMemoryWorker struct {
	queue     Queue
	notifier  Notifier
	name      string
	timeout   time.Duration
	onFailure FailureHandler

	delivered atomic.Int64
	failed    atomic.Int64

	done chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, n Notifier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		notifier:  n,
		name:      "worker",
		timeout:   defaultDeliveryTimeout,
		onFailure: func(context.Context, model.Notification, error) {},
		done:      make(chan struct{}),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run delivers notifications until the queue is closed and drained or ctx
// ends.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for n := range w.queue.Dequeue(ctx) {
		w.deliver(ctx, n)
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// Stats returns the delivered and failed counts.
func (w *InMemoryWorker) Stats() (delivered, failed int64) {
	return w.delivered.Load(), w.failed.Load()
}

func (w *InMemoryWorker) deliver(ctx context.Context, n model.Notification) {
	metrics.AddWorkerActive(1)
	defer metrics.AddWorkerActive(-1)

	start := time.Now()
	dctx, cancel := context.WithTimeout(ctx, w.timeout)
	err := w.notifier.Notify(dctx, n)
	cancel()
	metrics.RecordWorkerDelivery(float64(time.Since(start).Milliseconds()), err)

	if err != nil {
		w.failed.Add(1)
		metrics.RecordError("worker", "notify_failed")
		w.logger.Error(ctx, "notification delivery failed",
			logger.String("reference", n.Reference),
			logger.Error(err),
		)
		w.onFailure(ctx, n, err)
		return
	}
	w.delivered.Add(1)
	w.logger.Debug(ctx, "notification delivered", logger.String("reference", n.Reference))
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. Options apply to every
// worker; names are assigned per worker.
func NewPool(workerCount int, q Queue, n Notifier, l logger.Logger, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	if l == nil {
		l = logger.Nop()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  l,
	}
	for i := range p.workers {
		wopts := append([]Option{WithLogger(l)}, opts...)
		wopts = append(wopts, WithName("worker-"+strconv.Itoa(i)))
		p.workers[i] = NewInMemoryWorker(q, n, wopts...)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Stats sums delivered and failed counts across workers.
func (p *Pool) Stats() (delivered, failed int64) {
	for _, w := range p.workers {
		d, f := w.Stats()
		delivered += d
		failed += f
	}
	return delivered, failed
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("shutdown timed out: %w", ctx.Err())
		}
	}
	return nil
}

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coursebook/internal/adapters/mq/queue"
	"github.com/okian/coursebook/internal/domain/model"
)

type recordingNotifier struct {
	mu   sync.Mutex
	refs []string
	fail map[string]bool
}

func (r *recordingNotifier) Notify(_ context.Context, n model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[n.Reference] {
		return model.ErrNotifyTransport
	}
	r.refs = append(r.refs, n.Reference)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.refs)
}

func TestPool(t *testing.T) {
	ctx := context.Background()

	Convey("Given a pool over a queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		rec := &recordingNotifier{fail: map[string]bool{"bad": true}}

		var (
			mu     sync.Mutex
			failed []string
		)
		p := NewPool(3, q, rec, nil, WithFailureHandler(func(_ context.Context, n model.Notification, err error) {
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, model.ErrNotifyTransport) {
				failed = append(failed, n.Reference)
			}
		}))
		So(p.Size(), ShouldEqual, 3)
		p.Start(ctx)

		Convey("When notifications are queued and the pool shuts down", func() {
			for _, ref := range []string{"a", "b", "bad", "c"} {
				So(q.Enqueue(ctx, model.Notification{Reference: ref}), ShouldBeNil)
			}
			So(p.Shutdown(ctx), ShouldBeNil)

			Convey("Then the queue is drained before workers stop", func() {
				So(rec.count(), ShouldEqual, 3)
				delivered, fails := p.Stats()
				So(delivered, ShouldEqual, 3)
				So(fails, ShouldEqual, 1)
			})

			Convey("Then failures reach the handler", func() {
				mu.Lock()
				defer mu.Unlock()
				So(failed, ShouldResemble, []string{"bad"})
			})
		})
	})

	Convey("Given a worker whose context is cancelled", t, func() {
		q := queue.NewInMemoryQueue()
		w := NewInMemoryWorker(q, &recordingNotifier{}, WithName("solo"), WithDeliveryTimeout(time.Second))
		cctx, cancel := context.WithCancel(ctx)
		go w.Run(cctx)
		cancel()

		Convey("Then Run returns", func() {
			select {
			case <-w.Done():
			case <-time.After(time.Second):
				So("timeout", ShouldBeEmpty)
			}
		})
	})

	Convey("Given a non-positive worker count", t, func() {
		p := NewPool(0, queue.NewInMemoryQueue(), &recordingNotifier{}, nil)
		So(p.Size(), ShouldEqual, defaultWorkerCount)
	})
}

// Package service provides the catalog and enrollment service behind the
// HTTP API and the operator CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/coursebook/internal/adapters/mq/queue"
	"github.com/okian/coursebook/internal/adapters/mq/worker"
	"github.com/okian/coursebook/internal/adapters/notify"
	"github.com/okian/coursebook/internal/adapters/repository"
	"github.com/okian/coursebook/internal/domain/catalog"
	"github.com/okian/coursebook/internal/domain/dedupe"
	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/search"
	"github.com/okian/coursebook/internal/domain/slug"
	"github.com/okian/coursebook/pkg/logger"
	"github.com/okian/coursebook/pkg/metrics"
)

const subjectPrefix = "Course Enrollment: "

// Service answers catalog queries and accepts enrollments.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	resolver *catalog.Resolver
	matcher  *search.Matcher
	notifier notify.Notifier
	deduper  dedupe.Deduper
	queue    *queue.InMemoryQueue
	pool     *worker.Pool

	// Configuration
	mode          string
	queueSize     int
	workerCount   int
	dedupeSize    int
	dedupeWindow  time.Duration
	searchLimit   int
	notifyTimeout time.Duration
	recipient     string
	sender        string
	newReference  func() string

	// State
	started bool

	accepted   atomic.Int64
	duplicates atomic.Int64
	rejected   atomic.Int64
	failed     atomic.Int64

	logger logger.Logger
}

// New constructs a Service. Start must be called before use.
func New(opts ...Option) *Service {
	s := &Service{
		mode:          DeliverySync,
		queueSize:     1024,
		workerCount:   2,
		dedupeSize:    10_000,
		notifyTimeout: 10 * time.Second,
		newReference:  func() string { return uuid.NewString() },
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.logger.Named("notify"))
	}
	return s
}

// Start builds the catalog indexes and, in async mode, the delivery pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrNoCatalog
	}

	s.logger.Info(ctx, "starting coursebook service...")

	s.resolver = catalog.NewResolver(s.store)
	s.matcher = search.NewMatcher(s.store.All(), search.WithLimit(s.searchLimit))
	s.deduper = dedupe.New(
		dedupe.WithMaxSize(s.dedupeSize),
		dedupe.WithWindow(s.dedupeWindow),
	)

	if s.mode == DeliveryAsync {
		s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
		s.pool = worker.NewPool(s.workerCount, s.queue, s.notifier, s.logger.Named("workers"),
			worker.WithDeliveryTimeout(s.notifyTimeout),
			worker.WithFailureHandler(s.releaseFailed(s.deduper)),
		)
		s.pool.Start(context.WithoutCancel(ctx))
	}

	s.started = true
	s.logger.Info(ctx, "coursebook service started",
		logger.Int("courses", s.store.Count()),
		logger.Int("searchCorpus", s.matcher.Len()),
		logger.String("delivery", s.mode),
	)
	return nil
}

// Stop drains pending notifications and stops the workers.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping coursebook service...")

	var err error
	if s.pool != nil {
		err = s.pool.Shutdown(ctx)
	}
	s.started = false
	s.logger.Info(ctx, "coursebook service stopped")
	return err
}

// Categories lists every category with its display name and resolved count.
func (s *Service) Categories(ctx context.Context) ([]model.CategorySummary, error) {
	r, err := s.catalogResolver()
	if err != nil {
		return nil, err
	}
	out, err := r.Summaries()
	if err != nil {
		s.logger.Error(ctx, "category summaries failed", logger.Error(err))
		return nil, err
	}
	return out, nil
}

// ResolveCategory returns the annotated view of key, narrowed by filter. An
// empty key is ALL.
func (s *Service) ResolveCategory(ctx context.Context, key, filter string) ([]model.AnnotatedCourse, error) {
	r, err := s.catalogResolver()
	if err != nil {
		return nil, err
	}
	c, err := model.ParseCategory(key)
	if err != nil {
		metrics.RecordError("catalog", "unknown_category")
		return nil, err
	}

	start := time.Now()
	out, err := r.Resolve(c, catalog.ResolveOptions{Filter: filter})
	if err != nil {
		return nil, err
	}
	metrics.RecordResolve(string(c), float64(time.Since(start).Microseconds())/1000)
	s.logger.Debug(ctx, "category resolved",
		logger.String("category", string(c)),
		logger.Int("courses", len(out)),
	)
	return out, nil
}

// Search returns ranked suggestions for query.
func (s *Service) Search(_ context.Context, query string) ([]search.Suggestion, error) {
	s.mu.RLock()
	m, started := s.matcher, s.started
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	start := time.Now()
	out := m.Search(query)
	metrics.RecordSearch(len(out), float64(time.Since(start).Microseconds())/1000)
	return out, nil
}

// ResolveBySlug returns the course whose title encodes to s.
func (s *Service) ResolveBySlug(ctx context.Context, sl string) (model.CourseDetail, error) {
	if _, err := s.catalogResolver(); err != nil {
		return model.CourseDetail{}, err
	}
	c, err := catalog.BySlug(s.store, sl)
	metrics.RecordLookup("slug", err == nil)
	if err != nil {
		s.logger.Debug(ctx, "slug not found", logger.String("slug", sl))
		return model.CourseDetail{}, err
	}
	return s.detail(c), nil
}

// ResolveByID returns the course with id.
func (s *Service) ResolveByID(ctx context.Context, id int) (model.CourseDetail, error) {
	if _, err := s.catalogResolver(); err != nil {
		return model.CourseDetail{}, err
	}
	c, err := catalog.ByID(s.store, id)
	metrics.RecordLookup("id", err == nil)
	if err != nil {
		s.logger.Debug(ctx, "id not found", logger.Int("id", id))
		return model.CourseDetail{}, err
	}
	return s.detail(c), nil
}

// SlugOf encodes a course title for deep links.
func (s *Service) SlugOf(title string) string {
	return slug.Encode(title)
}

// detail decorates c for the enrollment page. The awarding body is the one
// shown in the course's own category, falling back to its image.
func (s *Service) detail(c model.Course) model.CourseDetail {
	source, _ := s.store.SourceOf(c.ID)
	body := catalog.Annotate(c, source, source).Body
	if body == "" {
		body, _ = catalog.AwardingBodyFromImage(c.ImagePath)
	}
	return model.CourseDetail{
		Course:       c,
		Slug:         slug.Encode(c.Title),
		AwardingBody: body,
		Area:         catalog.AreaFromImage(c.ImagePath),
		Source:       source,
	}
}

// Enroll validates a form and hands it to the notifier. A repeat of an
// accepted (email, course) pair is acknowledged without notifying again.
// In sync mode a delivery failure is returned and the submission can be
// retried; in async mode a full queue fails with ErrBackpressure.
func (s *Service) Enroll(ctx context.Context, e model.Enrollment) (model.Receipt, error) {
	s.mu.RLock()
	started, deduper, q, mode := s.started, s.deduper, s.queue, s.mode
	s.mu.RUnlock()
	if !started {
		return model.Receipt{}, ErrNotStarted
	}

	e = e.Normalize()
	if err := e.Validate(); err != nil {
		s.rejected.Add(1)
		_ = metrics.RecordEnrollment(metrics.OutcomeInvalid)
		return model.Receipt{}, err
	}

	fp := dedupe.Fingerprint(e.Email, e.Course)
	if deduper.SeenAndRecord(ctx, fp) {
		s.duplicates.Add(1)
		_ = metrics.RecordEnrollment(metrics.OutcomeDuplicate)
		s.logger.Info(ctx, "duplicate enrollment acknowledged", logger.String("course", e.Course))
		return model.Receipt{Duplicate: true}, nil
	}

	n := s.notification(e)
	log := s.logger.Named("enrollment")

	if mode == DeliveryAsync {
		if err := q.Enqueue(ctx, n); err != nil {
			deduper.Unrecord(ctx, fp)
			s.failed.Add(1)
			_ = metrics.RecordEnrollment(metrics.OutcomeRejected)
			log.Warn(ctx, "enrollment not queued", logger.String("reference", n.Reference), logger.Error(err))
			if errors.Is(err, queue.ErrFull) || errors.Is(err, queue.ErrClosed) {
				return model.Receipt{}, fmt.Errorf("%w: %w", ErrBackpressure, err)
			}
			return model.Receipt{}, err
		}
		s.accepted.Add(1)
		_ = metrics.RecordEnrollment(metrics.OutcomeQueued)
		log.Info(ctx, "enrollment queued", logger.String("reference", n.Reference), logger.String("course", e.Course))
		return model.Receipt{Reference: n.Reference, Queued: true}, nil
	}

	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()
	if err := s.notifier.Notify(nctx, n); err != nil {
		deduper.Unrecord(ctx, fp)
		s.failed.Add(1)
		_ = metrics.RecordEnrollment(metrics.OutcomeFailed)
		log.Error(ctx, "enrollment notification failed", logger.String("reference", n.Reference), logger.Error(err))
		if !errors.Is(err, model.ErrNotifyTransport) {
			err = fmt.Errorf("%w: %w", model.ErrNotifyTransport, err)
		}
		return model.Receipt{}, err
	}

	s.accepted.Add(1)
	_ = metrics.RecordEnrollment(metrics.OutcomeAccepted)
	log.Info(ctx, "enrollment accepted", logger.String("reference", n.Reference), logger.String("course", e.Course))
	return model.Receipt{Reference: n.Reference}, nil
}

func (s *Service) notification(e model.Enrollment) model.Notification {
	n := model.Notification{
		Reference:  s.newReference(),
		Subject:    subjectPrefix + e.Course,
		Recipient:  s.recipient,
		Sender:     s.sender,
		Enrollment: e,
	}
	if c, ok := catalog.ByTitle(s.store, e.Course); ok {
		d := s.detail(c)
		n.CourseSlug = d.Slug
		n.AwardingBody = d.AwardingBody
	}
	return n
}

// releaseFailed returns a handler that forgets the fingerprint of an
// undelivered async notification so the user can submit again. It must not
// take s.mu: Stop holds it while workers drain.
func (s *Service) releaseFailed(d dedupe.Deduper) worker.FailureHandler {
	return func(ctx context.Context, n model.Notification, _ error) {
		d.Unrecord(ctx, dedupe.Fingerprint(n.Enrollment.Email, n.Enrollment.Course))
		s.failed.Add(1)
	}
}

func (s *Service) catalogResolver() (*catalog.Resolver, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.resolver, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"delivery":    s.mode,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"enrollments": map[string]int64{
			"accepted":   s.accepted.Load(),
			"duplicates": s.duplicates.Load(),
			"rejected":   s.rejected.Load(),
			"failed":     s.failed.Load(),
		},
	}

	if s.started {
		stats["courses"] = s.store.Count()
		stats["searchCorpus"] = s.matcher.Len()
		stats["dedupeEntries"] = s.deduper.Size()
		if s.queue != nil {
			stats["queueLength"] = s.queue.Len()
			metrics.UpdateQueue(s.queue.Len(), s.queue.Cap())
		}
		if s.pool != nil {
			delivered, failed := s.pool.Stats()
			stats["delivered"] = delivered
			stats["deliveryFailures"] = failed
		}
	}
	return stats
}

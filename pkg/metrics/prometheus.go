// Package metrics provides Prometheus metrics for the coursebook service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enrollment outcomes used as label values.
const (
	OutcomeAccepted  = "accepted"
	OutcomeQueued    = "queued"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

var outcomes = map[string]struct{}{
	OutcomeAccepted:  {},
	OutcomeQueued:    {},
	OutcomeDuplicate: {},
	OutcomeInvalid:   {},
	OutcomeFailed:    {},
	OutcomeRejected:  {},
}

// Manager manages all Prometheus metrics for the coursebook service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Catalog
	catalogCourses *prometheus.GaugeVec
	catalogLoads   *prometheus.CounterVec
	resolves       *prometheus.CounterVec
	resolveLatency prometheus.Histogram
	lookups        *prometheus.CounterVec

	// Search
	searches      prometheus.Counter
	searchEmpty   prometheus.Counter
	searchResults prometheus.Histogram
	searchLatency prometheus.Histogram

	// Enrollment and notification
	enrollments   *prometheus.CounterVec
	notifyLatency prometheus.Histogram
	notifyErrors  prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueWait          prometheus.Histogram

	// Workers
	workerCount   prometheus.Gauge
	workerActive  prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure replaces the global manager and registry with one built from
// opts. Call it at startup before anything records or serves metrics.
func Configure(opts ...Option) *Manager {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
	return globalManager
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coursebook",
		subsystem:        "catalog",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	m.catalogCourses = promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "courses", Help: "Stored courses per category",
	}, []string{"category"})
	m.catalogLoads = m.counterVec("loads_total", "Catalog loads by result", "result")
	m.resolves = m.counterVec("resolves_total", "Category views resolved", "category")
	m.resolveLatency = m.histogram("resolve_latency_milliseconds", "Category resolution latency in milliseconds", m.histogramBuckets)
	m.lookups = m.counterVec("lookups_total", "Course lookups by kind and result", "kind", "result")

	m.searches = m.counter("searches_total", "Search queries answered")
	m.searchEmpty = m.counter("searches_empty_total", "Search queries with no suggestion")
	m.searchResults = m.histogram("search_results", "Suggestions returned per query", []float64{0, 1, 2, 5, 10, 25, 50, 100})
	m.searchLatency = m.histogram("search_latency_milliseconds", "Search latency in milliseconds", m.histogramBuckets)

	m.enrollments = m.counterVec("enrollments_total", "Enrollment submissions by outcome", "outcome")
	m.notifyLatency = m.histogram("notify_latency_milliseconds", "Notification delivery latency in milliseconds", m.histogramBuckets)
	m.notifyErrors = m.counter("notify_errors_total", "Failed notification deliveries")

	m.queueSize = m.gauge("queue_size", "Notifications waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Notification queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Notification queue fill ratio")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Notifications enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Notifications dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Notifications rejected by a full or closed queue")
	m.queueWait = m.histogram("queue_wait_milliseconds", "Time a notification spent queued in milliseconds", m.histogramBuckets)

	m.workerCount = m.gauge("worker_count", "Notification workers started")
	m.workerActive = m.gauge("worker_active", "Workers currently delivering")
	m.workerLatency = m.histogram("worker_processing_latency_milliseconds", "Worker delivery latency in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Worker delivery failures")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_milliseconds", Help: "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "error_type")

	m.systemMemory = promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "memory_bytes", Help: "Allocated heap bytes",
	})
	m.systemGoroutines = promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "goroutines", Help: "Running goroutines",
	})
	m.systemGCPause = promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "system", Name: "gc_pause_milliseconds",
		Help: "Average GC pause in milliseconds", Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
	})
}

// Catalog

// UpdateCatalogCourses sets the stored course count of a category.
func (m *Manager) UpdateCatalogCourses(category string, n int) {
	if m.enabled {
		m.catalogCourses.WithLabelValues(category).Set(float64(n))
	}
}

// RecordCatalogLoad counts a catalog load; ok selects the result label.
func (m *Manager) RecordCatalogLoad(ok bool) {
	if !m.enabled {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.catalogLoads.WithLabelValues(result).Inc()
}

// RecordResolve counts one resolved view and its latency.
func (m *Manager) RecordResolve(category string, latencyMs float64) {
	if m.enabled {
		m.resolves.WithLabelValues(category).Inc()
		m.resolveLatency.Observe(latencyMs)
	}
}

// RecordLookup counts a slug or id lookup.
func (m *Manager) RecordLookup(kind string, found bool) {
	if !m.enabled {
		return
	}
	result := "hit"
	if !found {
		result = "miss"
	}
	m.lookups.WithLabelValues(kind, result).Inc()
}

// RecordSearch counts a query with its suggestion count and latency.
func (m *Manager) RecordSearch(results int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.searches.Inc()
	if results == 0 {
		m.searchEmpty.Inc()
	}
	m.searchResults.Observe(float64(results))
	m.searchLatency.Observe(latencyMs)
}

// Enrollment

// RecordEnrollment counts a submission by outcome.
func (m *Manager) RecordEnrollment(outcome string) error {
	if _, ok := outcomes[outcome]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, outcome)
	}
	if m.enabled {
		m.enrollments.WithLabelValues(outcome).Inc()
	}
	return nil
}

// RecordNotify observes a delivery attempt.
func (m *Manager) RecordNotify(latencyMs float64, err error) {
	if !m.enabled {
		return
	}
	m.notifyLatency.Observe(latencyMs)
	if err != nil {
		m.notifyErrors.Inc()
	}
}

// Queue

// UpdateQueue sets the queue depth, capacity and fill ratio.
func (m *Manager) UpdateQueue(size, capacity int) {
	if !m.enabled {
		return
	}
	m.queueSize.Set(float64(size))
	m.queueCapacity.Set(float64(capacity))
	if capacity > 0 {
		m.queueUtilization.Set(float64(size) / float64(capacity))
	}
}

// RecordQueueEnqueue increments the enqueue counter.
func (m *Manager) RecordQueueEnqueue() {
	if m.enabled {
		m.queueEnqueued.Inc()
	}
}

// RecordQueueDequeue counts a dequeue and the time the item waited.
func (m *Manager) RecordQueueDequeue(waitMs float64) {
	if m.enabled {
		m.queueDequeued.Inc()
		m.queueWait.Observe(waitMs)
	}
}

// RecordQueueEnqueueError increments the enqueue error counter.
func (m *Manager) RecordQueueEnqueueError() {
	if m.enabled {
		m.queueEnqueueErrors.Inc()
	}
}

// Workers

// UpdateWorkerCount sets the number of started workers.
func (m *Manager) UpdateWorkerCount(n int) {
	if m.enabled {
		m.workerCount.Set(float64(n))
	}
}

// AddWorkerActive moves the active worker gauge by delta.
func (m *Manager) AddWorkerActive(delta int) {
	if m.enabled {
		m.workerActive.Add(float64(delta))
	}
}

// RecordWorkerDelivery observes a worker delivery.
func (m *Manager) RecordWorkerDelivery(latencyMs float64, err error) {
	if !m.enabled {
		return
	}
	m.workerLatency.Observe(latencyMs)
	if err != nil {
		m.workerErrors.Inc()
	}
}

// HTTP

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordError records an error with component and type labels.
func (m *Manager) RecordError(component, errorType string) {
	if m.enabled {
		m.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// System

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.enabled {
		m.systemMemory.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(n int) {
	if m.enabled {
		m.systemGoroutines.Set(float64(n))
	}
}

// RecordSystemGCPauseTime observes the average GC pause.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if m.enabled {
		m.systemGCPause.Observe(ms)
	}
}

// Package-level helpers over the global manager.

// UpdateCatalogCourses sets the stored course count of a category.
func UpdateCatalogCourses(category string, n int) { globalManager.UpdateCatalogCourses(category, n) }

// RecordCatalogLoad counts a catalog load.
func RecordCatalogLoad(ok bool) { globalManager.RecordCatalogLoad(ok) }

// RecordResolve counts one resolved view and its latency.
func RecordResolve(category string, latencyMs float64) {
	globalManager.RecordResolve(category, latencyMs)
}

// RecordLookup counts a slug or id lookup.
func RecordLookup(kind string, found bool) { globalManager.RecordLookup(kind, found) }

// RecordSearch counts a query with its suggestion count and latency.
func RecordSearch(results int, latencyMs float64) { globalManager.RecordSearch(results, latencyMs) }

// RecordEnrollment counts a submission by outcome.
func RecordEnrollment(outcome string) error { return globalManager.RecordEnrollment(outcome) }

// RecordNotify observes a delivery attempt.
func RecordNotify(latencyMs float64, err error) { globalManager.RecordNotify(latencyMs, err) }

// UpdateQueue sets the queue depth, capacity and fill ratio.
func UpdateQueue(size, capacity int) { globalManager.UpdateQueue(size, capacity) }

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() { globalManager.RecordQueueEnqueue() }

// RecordQueueDequeue counts a dequeue and the time the item waited.
func RecordQueueDequeue(waitMs float64) { globalManager.RecordQueueDequeue(waitMs) }

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() { globalManager.RecordQueueEnqueueError() }

// UpdateWorkerCount sets the number of started workers.
func UpdateWorkerCount(n int) { globalManager.UpdateWorkerCount(n) }

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) { globalManager.AddWorkerActive(delta) }

// RecordWorkerDelivery observes a worker delivery.
func RecordWorkerDelivery(latencyMs float64, err error) {
	globalManager.RecordWorkerDelivery(latencyMs, err)
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records an error with component and type labels.
func RecordError(component, errorType string) { globalManager.RecordError(component, errorType) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.UpdateSystemGoroutineCount(n) }

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }

package queue

// Option customises an InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity bounds how many notifications may wait for a worker before
// Enqueue reports ErrFull. Non-positive values keep the default.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

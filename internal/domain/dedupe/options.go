package dedupe

import "time"

// Option applies a configuration option to the Guard.
type Option func(*Guard)

// WithMaxSize bounds the number of remembered fingerprints. The oldest is
// evicted first. Zero or less keeps every fingerprint.
func WithMaxSize(maxSize int) Option {
	return func(g *Guard) {
		g.maxSize = maxSize
	}
}

// WithWindow forgets fingerprints older than window. Zero keeps them until
// evicted by size.
func WithWindow(window time.Duration) Option {
	return func(g *Guard) {
		if window > 0 {
			g.window = window
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

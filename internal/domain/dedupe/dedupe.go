// Package dedupe remembers recent enrollment submissions so a resubmitted
// form is acknowledged without notifying twice.
package dedupe

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const defaultMaxSize = 10000

// Deduper records submission fingerprints.
type Deduper interface {
	// SeenAndRecord reports whether key was already recorded, recording it
	// when it was not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so the submission can be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key string
	at  time.Time
}

// Guard is a bounded, insertion-ordered Deduper safe for concurrent use.
type Guard struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List // front is oldest
	maxSize int
	window  time.Duration
	now     func() time.Time
}

// New returns a Guard with the given options.
func New(opts ...Option) *Guard {
	g := &Guard{
		seen:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: defaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fingerprint identifies a submission by email and course. Email case and
// surrounding whitespace are ignored.
func Fingerprint(email, course string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email)) + "\x00" + strings.TrimSpace(course)))
	return hex.EncodeToString(sum[:])
}

// SeenAndRecord implements Deduper.
func (g *Guard) SeenAndRecord(_ context.Context, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.expire(now)

	if _, ok := g.seen[key]; ok {
		return true
	}
	if g.maxSize > 0 && g.order.Len() >= g.maxSize {
		g.remove(g.order.Front())
	}
	g.seen[key] = g.order.PushBack(entry{key: key, at: now})
	return false
}

// Unrecord implements Deduper.
func (g *Guard) Unrecord(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if el, ok := g.seen[key]; ok {
		g.remove(el)
	}
}

// Size implements Deduper.
func (g *Guard) Size() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int64(g.order.Len())
}

// expire drops entries older than the window. Entries are in insertion
// order, so it stops at the first fresh one.
func (g *Guard) expire(now time.Time) {
	if g.window <= 0 {
		return
	}
	for el := g.order.Front(); el != nil; el = g.order.Front() {
		if now.Sub(el.Value.(entry).at) < g.window {
			return
		}
		g.remove(el)
	}
}

func (g *Guard) remove(el *list.Element) {
	delete(g.seen, el.Value.(entry).key)
	g.order.Remove(el)
}

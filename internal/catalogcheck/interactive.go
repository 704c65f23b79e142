package catalogcheck

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	service "github.com/okian/coursebook/internal/app"
	"github.com/okian/coursebook/internal/domain/search"
)

// interactive reads one query per line and prints suggestions for the
// query that stays unchanged for the debounce period. Superseded queries are
// never searched. It returns the number of queries answered.
func interactive(ctx context.Context, svc *service.Service, config *Config, in io.Reader, out io.Writer) (int, error) {
	var (
		mu        sync.Mutex
		answered  int
		runErr    error
		lastShown string
	)
	delivered := make(chan struct{}, 1)

	d := search.NewDebouncer(config.Debounce, func(q string) {
		res, err := svc.Search(ctx, q)
		mu.Lock()
		if err != nil {
			runErr = err
		} else {
			answered++
			_ = printSuggestions(out, q, res)
		}
		lastShown = q
		mu.Unlock()
		select {
		case delivered <- struct{}{}:
		default:
		}
	})
	defer d.Stop()

	var last string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		last = q
		mu.Lock()
		lastShown = ""
		mu.Unlock()
		d.Push(q)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read queries: %w", err)
	}

	if last != "" {
		shown := func() bool {
			mu.Lock()
			defer mu.Unlock()
			return lastShown == last
		}
		waitFor(ctx, delivered, shown, flushFactor*effectiveDelay(config.Debounce))
	}
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	return answered, runErr
}

// waitFor blocks until done reports true after a delivery, ctx ends or
// timeout elapses.
func waitFor(ctx context.Context, delivered <-chan struct{}, done func() bool, timeout time.Duration) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for !done() {
		select {
		case <-delivered:
		case <-deadline.C:
			return
		case <-ctx.Done():
			return
		}
	}
}

func effectiveDelay(d time.Duration) time.Duration {
	if d <= 0 {
		return search.DefaultDebounce
	}
	return d
}

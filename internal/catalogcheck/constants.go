package catalogcheck

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Runner configuration constants.
const (
	DefaultTimeout = 10 * time.Second
	// flushFactor multiplies the debounce delay to bound the wait for the
	// last interactive query after input ends.
	flushFactor = 4
)

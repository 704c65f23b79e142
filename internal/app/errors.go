package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoCatalog    = errors.New("no catalog store configured")
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("notification queue is full")
)

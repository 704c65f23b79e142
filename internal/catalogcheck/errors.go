package catalogcheck

import "errors"

// ErrMismatch marks a running service whose catalog differs from the file.
var ErrMismatch = errors.New("service catalog differs from file")

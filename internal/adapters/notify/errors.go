package notify

import (
	"fmt"

	"github.com/okian/coursebook/internal/domain/model"
)

// TransportError is a relay response outside 2xx.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("notify relay returned %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match model.ErrNotifyTransport.
func (e *TransportError) Unwrap() error { return model.ErrNotifyTransport }

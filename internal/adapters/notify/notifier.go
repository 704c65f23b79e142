// Package notify delivers enrollment notifications.
package notify

import (
	"context"

	"github.com/okian/coursebook/internal/domain/model"
)

// Notifier delivers one notification. Failures wrap model.ErrNotifyTransport.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n model.Notification) error

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, n model.Notification) error { return f(ctx, n) }

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
	"github.com/okian/coursebook/pkg/metrics"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 512
)

// relayMessage is the JSON body posted to the mail relay.
type relayMessage struct {
	Reference string `json:"reference"`
	From      string `json:"from,omitempty"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	ReplyTo   string `json:"reply_to,omitempty"`
}

// RelayOption configures a RelayNotifier.
type RelayOption func(*RelayNotifier)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) RelayOption {
	return func(r *RelayNotifier) {
		if c != nil {
			r.client = c
		}
	}
}

// WithTimeout bounds a single delivery.
func WithTimeout(d time.Duration) RelayOption {
	return func(r *RelayNotifier) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithRelayLogger sets the logger.
func WithRelayLogger(l logger.Logger) RelayOption {
	return func(r *RelayNotifier) {
		if l != nil {
			r.log = l
		}
	}
}

// RelayNotifier posts notifications as JSON to an HTTP mail relay.
type RelayNotifier struct {
	url     string
	client  *http.Client
	timeout time.Duration
	log     logger.Logger
}

var _ Notifier = (*RelayNotifier)(nil)

// NewRelayNotifier returns a RelayNotifier posting to url.
func NewRelayNotifier(url string, opts ...RelayOption) *RelayNotifier {
	r := &RelayNotifier{
		url:     url,
		client:  http.DefaultClient,
		timeout: defaultTimeout,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Notify implements Notifier. It does not retry.
func (r *RelayNotifier) Notify(ctx context.Context, n model.Notification) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordNotify(float64(time.Since(start).Milliseconds()), err)
	}()

	html, err := RenderHTML(n)
	if err != nil {
		return err
	}
	body, err := json.Marshal(relayMessage{
		Reference: n.Reference,
		From:      n.Sender,
		To:        n.Recipient,
		Subject:   n.Subject,
		HTML:      html,
		ReplyTo:   n.Enrollment.Email,
	})
	if err != nil {
		return fmt.Errorf("encode notification %s: %w", n.Reference, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", model.ErrNotifyTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", n.Reference)

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error(ctx, "relay request failed", logger.String("reference", n.Reference), logger.Error(err))
		return fmt.Errorf("%w: %w", model.ErrNotifyTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		r.log.Error(ctx, "relay rejected notification",
			logger.String("reference", n.Reference),
			logger.Int("status", resp.StatusCode),
		)
		return &TransportError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	r.log.Info(ctx, "notification relayed",
		logger.String("reference", n.Reference),
		logger.String("subject", n.Subject),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

package catalogcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// getJSON performs a GET request and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s returned %d: %s", url, resp.StatusCode, body)
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// verifyService checks a running service is healthy and that its category
// counts equal want. It returns the number of categories compared.
func verifyService(ctx context.Context, config *Config, want []model.CategorySummary) (int, error) {
	client := newHTTPClient(config.Timeout)

	logger.Get().Info(ctx, "checking service health", logger.String("baseURL", config.BaseURL))
	if err := client.getJSON(ctx, config.BaseURL+"/healthz", nil); err != nil {
		return 0, err
	}

	var got struct {
		Categories []model.CategorySummary `json:"categories"`
	}
	if err := client.getJSON(ctx, config.BaseURL+"/categories", &got); err != nil {
		return 0, err
	}

	remote := make(map[model.Category]int, len(got.Categories))
	for _, s := range got.Categories {
		remote[s.Key] = s.Count
	}
	var mismatches []string
	for _, s := range want {
		n, ok := remote[s.Key]
		switch {
		case !ok:
			mismatches = append(mismatches, fmt.Sprintf("%s missing", s.Key))
		case n != s.Count:
			mismatches = append(mismatches, fmt.Sprintf("%s: service %d, file %d", s.Key, n, s.Count))
		}
	}
	if len(mismatches) > 0 {
		return 0, fmt.Errorf("%w: %v", ErrMismatch, mismatches)
	}
	return len(want), nil
}

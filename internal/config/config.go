// Package config defines service configuration and its loading.
package config

import "time"

// Notification delivery modes.
const (
	NotifyModeSync  = "sync"
	NotifyModeAsync = "async"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath is the YAML catalog loaded at startup.
	CatalogPath string `koanf:"catalog_path"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	CORSOrigins []string `koanf:"cors_origins"`

	// NotifyMode is sync (deliver inline) or async (queue and workers).
	NotifyMode string `koanf:"notify_mode"`

	// NotifyRelayURL is the mail relay endpoint. Empty logs notifications instead.
	NotifyRelayURL string `koanf:"notify_relay_url"`

	// NotifyRecipient receives enrollment notifications.
	NotifyRecipient string `koanf:"notify_recipient"`

	// NotifySender is the From address of notifications.
	NotifySender string `koanf:"notify_sender"`

	// NotifyTimeoutMS bounds one delivery.
	NotifyTimeoutMS int `koanf:"notify_timeout_ms"`

	// QueueSize bounds the async notification queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of notification workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the duplicate-submission guard.
	DedupeSize int `koanf:"dedupe_size"`

	// DedupeWindowS forgets submissions older than this many seconds. Zero
	// keeps them until evicted by size.
	DedupeWindowS int `koanf:"dedupe_window_s"`

	// MaxSearchResults caps GET /search. Zero is unlimited.
	MaxSearchResults int `koanf:"max_search_results"`

	// SearchDebounceMS is the quiet period of interactive search.
	SearchDebounceMS int `koanf:"search_debounce_ms"`

	// MetricsNamespace prefixes every Prometheus series.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsEnabled turns Prometheus recording on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsLatencyBucketsMS overrides the latency histogram buckets.
	MetricsLatencyBucketsMS []float64 `koanf:"metrics_latency_buckets_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		CatalogPath:      "data/catalog.yaml",
		CORSOrigins:      []string{"http://localhost:3000"},
		NotifyMode:       NotifyModeSync,
		NotifyRecipient:  "info@skyeducationltd.com",
		NotifyTimeoutMS:  10_000,
		QueueSize:        1024,
		WorkerCount:      2,
		DedupeSize:       10_000,
		DedupeWindowS:    600,
		MaxSearchResults: 0,
		SearchDebounceMS: 300,
		MetricsNamespace: "coursebook",
		MetricsEnabled:   true,
	}
}

// NotifyTimeout returns NotifyTimeoutMS as a duration.
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutMS) * time.Millisecond
}

// DedupeWindow returns DedupeWindowS as a duration.
func (c *Config) DedupeWindow() time.Duration {
	return time.Duration(c.DedupeWindowS) * time.Second
}

// SearchDebounce returns SearchDebounceMS as a duration.
func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

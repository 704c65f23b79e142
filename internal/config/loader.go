package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix = "COURSEBOOK_"
	EnvFile   = "COURSEBOOK_CONFIG"
)

// listKeys are split on commas when read from the environment.
var listKeys = map[string]struct{}{
	"cors_origins":               {},
	"metrics_latency_buckets_ms": {},
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COURSEBOOK_CONFIG is set
//  3. env (prefix COURSEBOOK_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// COURSEBOOK_QUEUE_SIZE -> queue_size. Underscores are kept to match the
	// flat koanf tags.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CatalogPath == "":
		return fmt.Errorf("%w: catalog_path must not be empty", ErrInvalidConfig)
	case c.NotifyMode != NotifyModeSync && c.NotifyMode != NotifyModeAsync:
		return fmt.Errorf("%w: notify_mode must be %q or %q, got %q", ErrInvalidConfig, NotifyModeSync, NotifyModeAsync, c.NotifyMode)
	case c.NotifyTimeoutMS < 0, c.QueueSize < 0, c.WorkerCount < 0, c.DedupeSize < 0,
		c.DedupeWindowS < 0, c.MaxSearchResults < 0, c.SearchDebounceMS < 0:
		return fmt.Errorf("%w: sizes, limits and timeouts must not be negative", ErrInvalidConfig)
	case c.NotifyMode == NotifyModeAsync && c.QueueSize == 0:
		return fmt.Errorf("%w: async notify_mode needs a queue_size", ErrInvalidConfig)
	case !slices.IsSorted(c.MetricsLatencyBucketsMS):
		return fmt.Errorf("%w: metrics_latency_buckets_ms must be increasing", ErrInvalidConfig)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

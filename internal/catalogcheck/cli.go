package catalogcheck

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/coursebook/pkg/logger"
)

// SetupLogging routes logs to stderr so reports on stdout stay clean.
func SetupLogging(verbose bool) error {
	if err := logger.InitWith(os.Stderr, logger.FormatText); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the catalog check tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Coursebook Catalog Check
========================

Validates a course catalog file and answers catalog queries against it.

Usage:
  go run ./cmd/catalog-check [options]

Options:
  -catalog string
        Catalog YAML file (default "data/catalog.yaml")
  -category string
        Resolve and print one category view (ALL, SEG, VTCT, PERSONS, "PRO QUAL", TAXI, SQA, ICQ)
  -filter string
        Narrow -category by title or description
  -search string
        Print ranked suggestions for a query
  -slug string
        Look a course up by slug
  -id int
        Look a course up by id
  -limit int
        Cap search results (default 0, no cap)
  -interactive
        Read queries from stdin, one per line, with debounced search
  -debounce duration
        Quiet period of interactive search (default 300ms)
  -url string
        Verify a running service's category counts against the file
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Validate the catalog and print category counts
  go run ./cmd/catalog-check -catalog data/catalog.yaml

  # Show the ICQ view
  go run ./cmd/catalog-check -category ICQ

  # Search interactively
  go run ./cmd/catalog-check -interactive

  # Compare a deployed service with the file
  go run ./cmd/catalog-check -url http://localhost:9080
`)
}

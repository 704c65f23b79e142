package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/coursebook/internal/catalogcheck"
	"github.com/okian/coursebook/internal/domain/search"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "data/catalog.yaml", "Catalog YAML file")
		category    = flag.String("category", "", "Category view to print")
		filter      = flag.String("filter", "", "Filter applied to -category")
		query       = flag.String("search", "", "Search query")
		slug        = flag.String("slug", "", "Slug to look up")
		id          = flag.Int("id", 0, "Course id to look up")
		limit       = flag.Int("limit", 0, "Maximum search results (0 for all)")
		interactive = flag.Bool("interactive", false, "Read search queries from stdin")
		debounce    = flag.Duration("debounce", search.DefaultDebounce, "Quiet period of interactive search")
		baseURL     = flag.String("url", "", "Running service to verify against the catalog")
		timeout     = flag.Duration("timeout", catalogcheck.DefaultTimeout, "HTTP request timeout")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		catalogcheck.ShowHelp(os.Stdout)
		return
	}

	if err := catalogcheck.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &catalogcheck.Config{
		CatalogPath: *catalogPath,
		Category:    *category,
		Filter:      *filter,
		Query:       *query,
		Slug:        *slug,
		ID:          *id,
		Limit:       *limit,
		Interactive: *interactive,
		Debounce:    *debounce,
		BaseURL:     *baseURL,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if err := catalogcheck.Run(ctx, config, os.Stdin, os.Stdout); err != nil {
		os.Stderr.WriteString("Catalog check failed: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

package catalogcheck

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/coursebook/internal/adapters/repository"
	service "github.com/okian/coursebook/internal/app"
	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
)

// Run validates the catalog and executes every query named in config,
// writing reports to out. Interactive queries are read from in.
func Run(ctx context.Context, config *Config, in io.Reader, out io.Writer) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("catalog-check")

	log.Info(ctx, "starting catalog check",
		logger.String("catalog", config.CatalogPath),
		logger.String("category", config.Category),
		logger.String("baseURL", config.BaseURL),
		logger.Bool("interactive", config.Interactive))

	// Step 1: Load and validate the catalog
	store, err := repository.LoadFile(ctx, config.CatalogPath, repository.WithLogger(log))
	if err != nil {
		return fmt.Errorf("catalog validation failed: %w", err)
	}
	stats.Courses = store.Count()

	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log),
		service.WithSearchLimit(config.Limit),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("service start failed: %w", err)
	}
	defer func() { _ = svc.Stop(ctx) }()

	// Step 2: Category summaries
	sums, err := svc.Categories(ctx)
	if err != nil {
		return fmt.Errorf("category summaries failed: %w", err)
	}
	stats.Categories = len(sums)
	_, _ = fmt.Fprintf(out, "catalog %s: %d course(s)\n\n", config.CatalogPath, stats.Courses)
	if err := printSummaries(out, sums); err != nil {
		return err
	}

	// Step 3: One category view
	if config.Category != "" {
		courses, err := svc.ResolveCategory(ctx, config.Category, config.Filter)
		if err != nil {
			return fmt.Errorf("resolve %q failed: %w", config.Category, err)
		}
		stats.Resolved = len(courses)
		if err := printCourses(out, model.Category(config.Category), courses); err != nil {
			return err
		}
	}

	// Step 4: One-shot search
	if config.Query != "" {
		res, err := svc.Search(ctx, config.Query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		stats.Suggestions = len(res)
		if err := printSuggestions(out, config.Query, res); err != nil {
			return err
		}
	}

	// Step 5: Lookups
	if config.Slug != "" {
		d, err := svc.ResolveBySlug(ctx, config.Slug)
		if err != nil {
			return fmt.Errorf("slug lookup failed: %w", err)
		}
		stats.Lookups++
		if err := printDetail(out, d); err != nil {
			return err
		}
	}
	if config.ID != 0 {
		d, err := svc.ResolveByID(ctx, config.ID)
		if err != nil {
			return fmt.Errorf("id lookup failed: %w", err)
		}
		stats.Lookups++
		if err := printDetail(out, d); err != nil {
			return err
		}
	}

	// Step 6: Verify a running service
	if config.BaseURL != "" {
		n, err := verifyService(ctx, config, sums)
		if err != nil {
			return fmt.Errorf("service verification failed: %w", err)
		}
		stats.Verified = n
		_, _ = fmt.Fprintf(out, "\n%s matches the catalog (%d categories)\n", config.BaseURL, n)
	}

	// Step 7: Interactive search
	if config.Interactive {
		n, err := interactive(ctx, svc, config, in, out)
		if err != nil {
			return fmt.Errorf("interactive search failed: %w", err)
		}
		stats.Answered = n
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("courses", stats.Courses),
		logger.Int("categories", stats.Categories),
		logger.Int("resolved", stats.Resolved),
		logger.Int("suggestions", stats.Suggestions),
		logger.Int("lookups", stats.Lookups),
		logger.Int("verified", stats.Verified),
		logger.Int("answered", stats.Answered),
		logger.Duration("duration", stats.Duration))
}

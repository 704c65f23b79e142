package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
	"github.com/okian/coursebook/pkg/metrics"
)

// courseRecord is the on-disk shape of a course.
type courseRecord struct {
	ID          int    `koanf:"id"`
	Title       string `koanf:"title"`
	Description string `koanf:"description"`
	ImagePath   string `koanf:"image_path"`
}

// document is the catalog file: a "categories" map of key to courses.
type document struct {
	Categories map[string][]courseRecord `koanf:"categories"`
}

// LoadFile reads a YAML catalog from path and builds a MemStore.
func LoadFile(ctx context.Context, path string, opts ...Option) (*MemStore, error) {
	start := time.Now()
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		metrics.RecordCatalogLoad(false)
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, path, err)
	}

	s, err := FromKoanf(ctx, k, opts...)
	if err != nil {
		metrics.RecordCatalogLoad(false)
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, path, err)
	}
	metrics.RecordCatalogLoad(true)
	s.log.Info(ctx, "catalog loaded",
		logger.String("path", path),
		logger.Duration("took", time.Since(start)),
	)
	return s, nil
}

// FromKoanf decodes an already loaded koanf instance into a MemStore.
func FromKoanf(ctx context.Context, k *koanf.Koanf, opts ...Option) (*MemStore, error) {
	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidPayload)
	}

	p := make(Payload, len(doc.Categories))
	for key, records := range doc.Categories {
		courses := make([]model.Course, len(records))
		for i, r := range records {
			courses[i] = model.Course{
				ID:          r.ID,
				Title:       r.Title,
				Description: r.Description,
				ImagePath:   r.ImagePath,
			}
		}
		p[model.Category(key)] = courses
	}
	return NewMemStore(ctx, p, opts...)
}

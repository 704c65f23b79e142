package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/slug"
	"github.com/okian/coursebook/pkg/logger"
	"github.com/okian/coursebook/pkg/metrics"
)

// MemStore is an immutable in-memory Store built from a validated Payload.
type MemStore struct {
	byCategory map[model.Category][]model.Course
	all        []model.Course
	sourceOf   map[int]model.Category

	log     logger.Logger
	metrics bool
}

var _ Store = (*MemStore)(nil)

// NewMemStore validates p and builds a MemStore. Sequences are copied; later
// changes to p are not observed.
func NewMemStore(ctx context.Context, p Payload, opts ...Option) (*MemStore, error) {
	s := &MemStore{
		byCategory: make(map[model.Category][]model.Course, len(p)),
		sourceOf:   make(map[int]model.Category),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	for _, c := range model.StoredCategories() {
		seq := p[c]
		s.byCategory[c] = append([]model.Course(nil), seq...)
		for _, course := range seq {
			if _, ok := s.sourceOf[course.ID]; ok {
				continue
			}
			s.sourceOf[course.ID] = c
			s.all = append(s.all, course)
		}
		if s.metrics {
			metrics.UpdateCatalogCourses(string(c), len(seq))
		}
	}

	s.log.Info(ctx, "catalog built",
		logger.Int("courses", len(s.all)),
		logger.Int("categories", len(p)),
	)
	return s, nil
}

// Category implements catalog.Source. ALL has no stored sequence.
func (s *MemStore) Category(c model.Category) ([]model.Course, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCategory, string(c))
	}
	return append([]model.Course(nil), s.byCategory[c]...), nil
}

// All implements catalog.Source.
func (s *MemStore) All() []model.Course {
	return append([]model.Course(nil), s.all...)
}

// SourceOf implements catalog.Source.
func (s *MemStore) SourceOf(id int) (model.Category, bool) {
	c, ok := s.sourceOf[id]
	return c, ok
}

// Count implements Store.
func (s *MemStore) Count() int { return len(s.all) }

// CategoryCount implements Store.
func (s *MemStore) CategoryCount(c model.Category) int { return len(s.byCategory[c]) }

// validate enforces the catalog invariants: known stored keys only, positive
// ids, non-empty titles with non-empty slugs, unique ids per category, one
// title per id and one title per slug.
func validate(p Payload) error {
	titleOf := make(map[int]string)
	titleOfSlug := make(map[string]string)

	for key, seq := range p {
		if key == model.CategoryAll || !key.Valid() {
			return fmt.Errorf("%w: category %q is not a stored key", ErrInvalidPayload, string(key))
		}
		inCategory := make(map[int]struct{}, len(seq))
		for i, c := range seq {
			if c.ID <= 0 {
				return fmt.Errorf("%w: %s[%d]: id %d must be positive", ErrInvalidCourse, key, i, c.ID)
			}
			if strings.TrimSpace(c.Title) == "" {
				return fmt.Errorf("%w: %s[%d]: id %d has an empty title", ErrInvalidCourse, key, i, c.ID)
			}
			s := slug.Encode(c.Title)
			if s == "" {
				return fmt.Errorf("%w: %s[%d]: title %q has no slug", ErrInvalidCourse, key, i, c.Title)
			}
			if _, dup := inCategory[c.ID]; dup {
				return fmt.Errorf("%w: id %d repeated in %s", ErrIDConflict, c.ID, key)
			}
			inCategory[c.ID] = struct{}{}

			if prev, ok := titleOf[c.ID]; ok && prev != c.Title {
				return fmt.Errorf("%w: id %d is both %q and %q", ErrIDConflict, c.ID, prev, c.Title)
			}
			titleOf[c.ID] = c.Title

			if prev, ok := titleOfSlug[s]; ok && prev != c.Title {
				return fmt.Errorf("%w: %q and %q both encode to %q", ErrSlugCollision, prev, c.Title, s)
			}
			titleOfSlug[s] = c.Title
		}
	}
	return nil
}

package catalog

import (
	"fmt"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/slug"
)

// BySlug returns the first course, in declared category order, whose encoded
// title equals s. A miss is model.ErrNotFound.
func BySlug(src Source, s string) (model.Course, error) {
	for _, course := range src.All() {
		if slug.Encode(course.Title) == s {
			return course, nil
		}
	}
	return model.Course{}, fmt.Errorf("%w: slug %q", model.ErrNotFound, s)
}

// ByID returns the first course, in declared category order, with id.
// A miss is model.ErrNotFound.
func ByID(src Source, id int) (model.Course, error) {
	for _, course := range src.All() {
		if course.ID == id {
			return course, nil
		}
	}
	return model.Course{}, fmt.Errorf("%w: id %d", model.ErrNotFound, id)
}

// ByTitle returns the first course whose title equals title exactly.
func ByTitle(src Source, title string) (model.Course, bool) {
	for _, course := range src.All() {
		if course.Title == title {
			return course, true
		}
	}
	return model.Course{}, false
}

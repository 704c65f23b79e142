package catalog

import (
	"fmt"
	"strings"

	"github.com/okian/coursebook/internal/domain/model"
)

// ResolveOptions narrows a resolved view.
type ResolveOptions struct {
	// Filter keeps courses whose title or description contains it,
	// case-insensitively. Resolved order is preserved.
	Filter string
}

// Resolver computes category views over a Source.
type Resolver struct {
	src Source
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns the ordered, deduplicated and annotated courses of a
// category view. An unknown key fails with model.ErrUnknownCategory; an empty
// result is not an error.
func (r *Resolver) Resolve(c model.Category, opts ResolveOptions) ([]model.AnnotatedCourse, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCategory, string(c))
	}

	var (
		courses []model.Course
		err     error
	)
	switch c {
	case model.CategoryAll:
		courses = r.all()
	case model.CategoryICQ:
		courses, err = r.icq()
	default:
		courses, err = r.stored(c)
	}
	if err != nil {
		return nil, err
	}

	courses = filterCourses(dedupeByID(courses), opts.Filter)

	out := make([]model.AnnotatedCourse, len(courses))
	for i, course := range courses {
		source := c
		if s, ok := r.src.SourceOf(course.ID); ok {
			source = s
		}
		a := Annotate(course, c, source)
		out[i] = model.AnnotatedCourse{
			Course:       course,
			DisplayTitle: a.DisplayTitle,
			Badge:        a.Badge,
			Source:       source,
		}
	}
	return out, nil
}

// Summaries lists every category with its resolved course count.
func (r *Resolver) Summaries() ([]model.CategorySummary, error) {
	keys := model.Categories()
	out := make([]model.CategorySummary, 0, len(keys))
	for _, k := range keys {
		courses, err := r.Resolve(k, ResolveOptions{})
		if err != nil {
			return nil, err
		}
		out = append(out, model.CategorySummary{Key: k, Name: k.Name(), Count: len(courses)})
	}
	return out, nil
}

// all is the unfiltered view minus the ICQ-only ids. Order is the
// repository's first-seen order and is not re-sorted.
func (r *Resolver) all() []model.Course {
	var out []model.Course
	for _, course := range r.src.All() {
		if !ICQOnly.Has(course.ID) {
			out = append(out, course)
		}
	}
	return out
}

// icq is the ICQ view: native courses plus Level 4 courses relocated from
// every other category, grouped A, VTCT, PROQUAL, then unlisted relocations.
// Native courses outside the three groups are not shown.
func (r *Resolver) icq() ([]model.Course, error) {
	native, err := r.src.Category(model.CategoryICQ)
	if err != nil {
		return nil, err
	}
	nativeIDs := make(map[int]struct{}, len(native))
	for _, course := range native {
		nativeIDs[course.ID] = struct{}{}
	}

	var relocated []model.Course
	for _, k := range model.StoredCategories() {
		if k == model.CategoryICQ {
			continue
		}
		stored, err := r.src.Category(k)
		if err != nil {
			return nil, err
		}
		for _, course := range stored {
			if _, ok := nativeIDs[course.ID]; ok {
				continue
			}
			if IsLevel4(course.Title) {
				relocated = append(relocated, course)
			}
		}
	}

	pool := make([]model.Course, 0, len(native)+len(relocated))
	pool = append(pool, native...)
	pool = append(pool, relocated...)

	var out []model.Course
	for _, group := range icqGroups {
		for _, course := range pool {
			if group.Has(course.ID) {
				out = append(out, course)
			}
		}
	}
	for _, course := range relocated {
		if !inICQGroup(course.ID) {
			out = append(out, course)
		}
	}
	return out, nil
}

// stored is the view of every category other than ALL and ICQ.
func (r *Resolver) stored(c model.Category) ([]model.Course, error) {
	seq, err := r.src.Category(c)
	if err != nil {
		return nil, err
	}
	var kept []model.Course
	for _, course := range seq {
		if IsLevel4(course.Title) || ICQOnly.Has(course.ID) {
			continue
		}
		kept = append(kept, course)
	}
	kept = dedupeByID(kept)

	if c == model.CategoryPersons {
		return prioritize(kept, PersonsPriority), nil
	}
	sortByTitle(kept)
	return kept, nil
}

// prioritize moves the ids of set to the front in the set's literal order and
// keeps the remainder in its original order.
func prioritize(courses []model.Course, set IDSet) []model.Course {
	out := make([]model.Course, 0, len(courses))
	for _, id := range set.IDs() {
		for _, course := range courses {
			if course.ID == id {
				out = append(out, course)
			}
		}
	}
	for _, course := range courses {
		if !set.Has(course.ID) {
			out = append(out, course)
		}
	}
	return out
}

func inICQGroup(id int) bool {
	for _, g := range icqGroups {
		if g.Has(id) {
			return true
		}
	}
	return false
}

// dedupeByID keeps the first occurrence of every id.
func dedupeByID(courses []model.Course) []model.Course {
	seen := make(map[int]struct{}, len(courses))
	out := courses[:0:0]
	for _, course := range courses {
		if _, ok := seen[course.ID]; ok {
			continue
		}
		seen[course.ID] = struct{}{}
		out = append(out, course)
	}
	return out
}

func filterCourses(courses []model.Course, filter string) []model.Course {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return courses
	}
	var out []model.Course
	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Title), f) || strings.Contains(strings.ToLower(course.Description), f) {
			out = append(out, course)
		}
	}
	return out
}

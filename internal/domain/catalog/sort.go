package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/coursebook/internal/domain/model"
)

// sortByTitle orders courses by title with English collation. The sort is
// stable so equal titles keep their stored order. A Collator is not safe for
// concurrent use, so one is built per call.
func sortByTitle(courses []model.Course) {
	col := collate.New(language.English)
	slices.SortStableFunc(courses, func(a, b model.Course) int {
		return col.CompareString(a.Title, b.Title)
	})
}

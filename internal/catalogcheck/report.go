package catalogcheck

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/search"
)

func printSummaries(w io.Writer, sums []model.CategorySummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tNAME\tCOURSES")
	for _, s := range sums {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Key, s.Name, s.Count)
	}
	return tw.Flush()
}

func printCourses(w io.Writer, c model.Category, courses []model.AnnotatedCourse) error {
	_, _ = fmt.Fprintf(w, "\n%s (%d)\n", c.Name(), len(courses))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tBADGE\tSOURCE\tTITLE")
	for _, a := range courses {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.ID, a.Badge, a.Source, a.DisplayTitle)
	}
	return tw.Flush()
}

func printSuggestions(w io.Writer, query string, out []search.Suggestion) error {
	_, _ = fmt.Fprintf(w, "\nsearch %q: %d result(s)\n", query, len(out))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, s := range out {
		_, _ = fmt.Fprintf(tw, "%d.\t%s\t%s\n", i+1, s.Title, s.LevelHint)
	}
	return tw.Flush()
}

func printDetail(w io.Writer, d model.CourseDetail) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "\nid\t%d\n", d.ID)
	_, _ = fmt.Fprintf(tw, "title\t%s\n", d.Title)
	_, _ = fmt.Fprintf(tw, "slug\t%s\n", d.Slug)
	_, _ = fmt.Fprintf(tw, "source\t%s\n", d.Source)
	_, _ = fmt.Fprintf(tw, "awarding body\t%s\n", d.AwardingBody)
	_, _ = fmt.Fprintf(tw, "area\t%s\n", d.Area)
	return tw.Flush()
}

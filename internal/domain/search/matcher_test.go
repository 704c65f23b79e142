package search

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coursebook/internal/domain/model"
)

func titles(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Title
	}
	return out
}

func corpus() []model.Course {
	return []model.Course{
		{ID: 1, Title: "Introduction to Level 2 Concepts"},
		{ID: 2, Title: "Level 2 Award in X"},
		{ID: 3, Title: "Certificate Level 12 Mastery"},
		{ID: 4, Title: "Maths"},
		{ID: 5, Title: "Maths Booster"},
		{ID: 6, Title: "GCSE Maths"},
		{ID: 7, Title: "Level 2 Award in X"},
		{ID: 8, Title: "Diploma level2 Catering"},
	}
}

func TestSearch(t *testing.T) {
	Convey("Given a course corpus", t, func() {
		c := Corpus(corpus())

		Convey("Then duplicate titles collapse to the first occurrence", func() {
			So(c, ShouldHaveLength, 7)
		})

		Convey("When the query is empty or blank", func() {
			Convey("Then the result is empty", func() {
				So(Search("", c), ShouldBeEmpty)
				So(Search("   ", c), ShouldBeEmpty)
			})
		})

		Convey("When nothing matches", func() {
			So(Search("carpentry", c), ShouldBeEmpty)
		})

		Convey("When searching a level", func() {
			got := Search("level 2", c)

			Convey("Then titles opening with the level come first", func() {
				So(titles(got), ShouldResemble, []string{
					"Level 2 Award in X",
					"Introduction to Level 2 Concepts",
					"Diploma level2 Catering",
				})
			})

			Convey("Then level 12 is not read as level 1", func() {
				So(titleLevel("certificate level 12 mastery"), ShouldEqual, 12)
				So(titles(got), ShouldNotContain, "Certificate Level 12 Mastery")
			})

			Convey("Then the level hint is carried", func() {
				So(got[0].LevelHint, ShouldEqual, "Level 2")
				So(got[2].LevelHint, ShouldEqual, "level2")
			})
		})

		Convey("When searching a bare digit", func() {
			got := Search(" 2 ", c)

			Convey("Then it behaves as a level query and substring hits rank last", func() {
				So(titles(got), ShouldResemble, []string{
					"Level 2 Award in X",
					"Introduction to Level 2 Concepts",
					"Diploma level2 Catering",
					"Certificate Level 12 Mastery",
				})
			})
		})

		Convey("When searching free text", func() {
			got := Search("MATHS", c)

			Convey("Then exact and prefix matches lead, the rest keep corpus order", func() {
				So(titles(got), ShouldResemble, []string{"Maths", "Maths Booster", "GCSE Maths"})
				So(got[0].LevelHint, ShouldBeEmpty)
			})
		})

		Convey("When a matcher has a limit", func() {
			m := NewMatcher(corpus(), WithLimit(1))

			Convey("Then results are capped", func() {
				So(m.Len(), ShouldEqual, 7)
				So(m.Search("maths"), ShouldHaveLength, 1)
			})
		})
	})
}

func TestQueryLevel(t *testing.T) {
	Convey("Given queries", t, func() {
		So(QueryLevel("level 3"), ShouldEqual, 3)
		So(QueryLevel("level3 diploma"), ShouldEqual, 3)
		So(QueryLevel("7"), ShouldEqual, 7)
		So(QueryLevel("0"), ShouldEqual, 0)
		So(QueryLevel("17"), ShouldEqual, 0)
		So(QueryLevel("maths"), ShouldEqual, 0)
	})
}

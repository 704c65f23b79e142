package slug

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEncode(t *testing.T) {
	Convey("Given course titles", t, func() {
		cases := map[string]string{
			"MOT Technician Level 2":                            "mot-technician-level-2",
			"Level 3 Award in Education & Training (AET)":       "level-3-award-in-education-training-aet",
			"  --Entry Level 1 English--  ":                     "entry-level-1-english",
			"PRO QUAL: Level 2 NVQ":                             "pro-qual-level-2-nvq",
			"Café Skills":                                       "caf-skills",
			"!!!":                                               "",
			"VTCT FUNCTIONAL SKILLS Level 1 Maths":              "vtct-functional-skills-level-1-maths",
			"Introduction to the Role of the Professional Taxi": "introduction-to-the-role-of-the-professional-taxi",
		}

		Convey("Then each encodes to the expected slug", func() {
			for title, want := range cases {
				So(Encode(title), ShouldEqual, want)
			}
		})

		Convey("Then no slug has consecutive, leading or trailing hyphens", func() {
			for title := range cases {
				s := Encode(title)
				So(strings.Contains(s, "--"), ShouldBeFalse)
				So(strings.HasPrefix(s, "-"), ShouldBeFalse)
				So(strings.HasSuffix(s, "-"), ShouldBeFalse)
			}
		})

		Convey("Then encoding is deterministic and stable on its own output", func() {
			for title := range cases {
				s := Encode(title)
				So(Encode(title), ShouldEqual, s)
				So(Encode(s), ShouldEqual, s)
			}
		})
	})
}

func TestValid(t *testing.T) {
	Convey("Given candidate slugs", t, func() {
		So(Valid("mot-technician-level-2"), ShouldBeTrue)
		So(Valid("MOT-technician"), ShouldBeFalse)
		So(Valid("-mot"), ShouldBeFalse)
		So(Valid(""), ShouldBeFalse)
	})
}

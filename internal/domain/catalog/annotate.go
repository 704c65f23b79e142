package catalog

import (
	"regexp"
	"strings"

	"github.com/okian/coursebook/internal/domain/model"
)

// Annotation is the awarding-body decoration of a course in one view.
type Annotation struct {
	DisplayTitle string
	Badge        string
	Body         string
	Rule         string // name of the rule that decided
}

// decision is a rule outcome before the display title is assembled.
type decision struct {
	body   string
	title  string
	prefix bool
	// Skip the prefix when the title already names the body as a word.
	unlessNamed bool
}

type annotationRule struct {
	name  string
	apply func(c model.Course, view, source model.Category) (decision, bool)
}

// annotationRules are evaluated top to bottom; the first match wins.
var annotationRules = []annotationRule{
	{
		name: "icq-vtct-subset",
		apply: func(c model.Course, view, _ model.Category) (decision, bool) {
			if view == model.CategoryICQ && ICQGroupVTCT.Has(c.ID) {
				return decision{body: BodyVTCT, title: c.Title, prefix: true}, true
			}
			return decision{}, false
		},
	},
	{
		name: "proqual-image",
		apply: func(c model.Course, _, _ model.Category) (decision, bool) {
			if strings.Contains(strings.ToLower(c.ImagePath), "proqual") {
				return decision{body: BodyProQual, title: c.Title, prefix: true}, true
			}
			return decision{}, false
		},
	},
	{
		name: "taxi-sqa",
		apply: func(c model.Course, view, _ model.Category) (decision, bool) {
			if view == model.CategoryTaxi && (strings.Contains(c.Title, "SQA") || TaxiSQA.Has(c.ID)) {
				return decision{body: BodySQA, title: c.Title, prefix: true}, true
			}
			return decision{}, false
		},
	},
	{
		// BTEC titles are badged ICQ but left unprefixed in the ALL and TAXI views.
		name: "icq-title",
		apply: func(c model.Course, view, _ model.Category) (decision, bool) {
			if !ICQOverride.Has(c.ID) && !containsAny(c.Title, icqOverrideTitles) {
				return decision{}, false
			}
			bare := strings.Contains(c.Title, "BTEC") && (view == model.CategoryAll || view == model.CategoryTaxi)
			return decision{body: BodyICQ, title: c.Title, prefix: !bare}, true
		},
	},
	{
		name: "vtct-functional-skills",
		apply: func(c model.Course, view, _ model.Category) (decision, bool) {
			if view == model.CategoryVTCT && (strings.Contains(c.Title, "ESOL") || strings.Contains(c.Title, "ITEC")) {
				return decision{body: BodyVTCT, title: "FUNCTIONAL SKILLS " + c.Title}, true
			}
			return decision{}, false
		},
	},
	{
		name: "persons-functional-skills",
		apply: func(c model.Course, view, _ model.Category) (decision, bool) {
			if view != model.CategoryPersons {
				return decision{}, false
			}
			if strings.Contains(c.Title, "VTCT FUNCTIONAL SKILLS") {
				return decision{body: BodyVTCT, title: c.Title}, true
			}
			if rebuilt, ok := functionalSkillsTitle(c.Title); ok {
				return decision{body: BodyPearson, title: rebuilt, prefix: true}, true
			}
			return decision{title: c.Title}, true
		},
	},
	{
		name: "category-table",
		apply: func(c model.Course, view, source model.Category) (decision, bool) {
			if view != model.CategoryAll {
				body := CategoryBody(view)
				return decision{body: body, title: c.Title, prefix: body != ""}, true
			}
			body := CategoryBody(source)
			return decision{body: body, title: c.Title, prefix: body != "", unlessNamed: true}, true
		},
	},
}

// Annotate computes the display title and badge of c shown in view. source is
// the stored category c was inferred from; it only matters for the ALL view.
func Annotate(c model.Course, view, source model.Category) Annotation {
	var (
		d    decision
		name string
	)
	for _, r := range annotationRules {
		if out, ok := r.apply(c, view, source); ok {
			d, name = out, r.name
			break
		}
	}

	display := d.title
	if d.prefix && d.body != "" && !(d.unlessNamed && namesBody(d.title, d.body)) {
		display = d.body + " " + d.title
	}

	badge := d.body
	if badge == "" {
		if view == model.CategoryAll {
			badge = BadgeFeatured
		} else {
			badge = string(view)
		}
	}

	return Annotation{DisplayTitle: display, Badge: badge, Body: d.body, Rule: name}
}

// namesBody reports whether title contains body as a whole, case-sensitive word.
func namesBody(title, body string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(body) + `\b`).MatchString(title)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

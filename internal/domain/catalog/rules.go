// Package catalog resolves category views, annotates awarding bodies and
// looks courses up by slug or id. Every function is pure over a read-only Source.
package catalog

import "github.com/okian/coursebook/internal/domain/model"

// IDSet is a named, fixed set of course ids.
type IDSet struct {
	name  string
	order []int
	index map[int]struct{}
}

func newIDSet(name string, ids ...int) IDSet {
	s := IDSet{name: name, order: ids, index: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.index[id] = struct{}{}
	}
	return s
}

// Has reports whether id belongs to the set.
func (s IDSet) Has(id int) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the ids in declared order.
func (s IDSet) IDs() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Name returns the set label used in logs and tests.
func (s IDSet) Name() string { return s.name }

// Id tables consumed by the resolver and the annotator.
var (
	// ICQOnly ids surface exclusively inside the ICQ view.
	ICQOnly = newIDSet("icq-only", 70, 71, 72, 73, 74)

	// ICQGroupA leads the ICQ view.
	ICQGroupA = newIDSet("icq-group-a", 3, 9, 10)
	// ICQGroupVTCT follows group A and carries the VTCT badge inside ICQ.
	ICQGroupVTCT = newIDSet("icq-group-vtct", 2, 4, 56, 57, 70, 71, 72, 73, 74)
	// ICQGroupProQual closes the grouped part of the ICQ view.
	ICQGroupProQual = newIDSet("icq-group-proqual", 15, 16, 17, 18)

	// PersonsPriority is the literal leading order of the PERSONS view.
	PersonsPriority = newIDSet("persons-priority", 5, 4, 3, 10, 9, 8, 75, 76, 77, 78)

	// TaxiSQA ids are badged SQA inside the TAXI view regardless of title.
	TaxiSQA = newIDSet("taxi-sqa", 1, 2)

	// ICQOverride ids are badged ICQ regardless of title.
	ICQOverride = newIDSet("icq-override", 46)
)

// icqGroups is the fixed partition order of the ICQ view.
var icqGroups = []IDSet{ICQGroupA, ICQGroupVTCT, ICQGroupProQual}

// icqOverrideTitles mark a course as ICQ-awarded by title substring.
var icqOverrideTitles = []string{
	"ICQ",
	"BTEC",
	"Introduction to the Role of the Professional Taxi",
}

// Awarding body labels.
const (
	BodyVTCT    = "VTCT"
	BodyProQual = "PROQUAL"
	BodySQA     = "SQA"
	BodyICQ     = "ICQ"
	BodySEG     = "SEG"
	BodyPearson = "PEARSON"

	// BadgeFeatured labels ALL-view cards without an awarding body.
	BadgeFeatured = "Featured"
)

// categoryBodies is the last-resort body per category.
var categoryBodies = map[model.Category]string{
	model.CategorySEG:     BodySEG,
	model.CategoryVTCT:    BodyVTCT,
	model.CategoryPersons: "",
	model.CategoryProQual: "PRO QUAL",
	model.CategoryTaxi:    BodySQA,
	model.CategorySQA:     BodySQA,
	model.CategoryICQ:     BodyICQ,
}

// CategoryBody returns the last-resort awarding body for c.
func CategoryBody(c model.Category) string {
	return categoryBodies[c]
}

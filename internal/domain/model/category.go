// Package model contains domain models passed between layers.
package model

import "fmt"

// Category is a key from the fixed catalog enumeration.
type Category string

// Category keys. ALL is a derived view and is never stored.
const (
	CategoryAll     Category = "ALL"
	CategorySEG     Category = "SEG"
	CategoryVTCT    Category = "VTCT"
	CategoryPersons Category = "PERSONS"
	CategoryProQual Category = "PRO QUAL"
	CategoryTaxi    Category = "TAXI"
	CategorySQA     Category = "SQA"
	CategoryICQ     Category = "ICQ"
)

// categories lists every key in declared order.
var categories = []Category{
	CategoryAll,
	CategorySEG,
	CategoryVTCT,
	CategoryPersons,
	CategoryProQual,
	CategoryTaxi,
	CategorySQA,
	CategoryICQ,
}

// displayNames maps keys to the navigation labels shown to visitors.
var displayNames = map[Category]string{
	CategoryAll:     "All Courses",
	CategorySEG:     "Automotive & MOT",
	CategoryVTCT:    "ESOL Certificates",
	CategoryPersons: "English & Math",
	CategoryProQual: "Construction",
	CategoryTaxi:    "Taxi & Private Hire",
	CategorySQA:     "SQA",
	CategoryICQ:     "Education & Training",
}

// Categories returns every category key in declared order, ALL first.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// StoredCategories returns the stored keys in declared order. This order is
// authoritative for first-match lookups and source-category inference.
func StoredCategories() []Category {
	out := make([]Category, 0, len(categories)-1)
	for _, c := range categories {
		if c != CategoryAll {
			out = append(out, c)
		}
	}
	return out
}

// Valid reports whether c belongs to the fixed enumeration.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// Name returns the navigation label for c, or the key itself when unknown.
func (c Category) Name() string {
	if n, ok := displayNames[c]; ok {
		return n
	}
	return string(c)
}

// ParseCategory validates a raw key. An empty key selects ALL.
func ParseCategory(raw string) (Category, error) {
	if raw == "" {
		return CategoryAll, nil
	}
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

// CategorySummary describes one navigation entry.
type CategorySummary struct {
	Key   Category `json:"key"`
	Name  string   `json:"name"`
	Count int      `json:"count"`
}

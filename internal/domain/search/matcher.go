// Package search ranks course suggestions for a free-text query.
package search

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/okian/coursebook/internal/domain/model"
)

var (
	queryLevelPattern = regexp.MustCompile(`level\s*([1-9])`)
	bareLevelPattern  = regexp.MustCompile(`^[1-9]$`)
	titleLevelPattern = regexp.MustCompile(`(?i)level\s*([0-9]+)`)
	levelHintPattern  = regexp.MustCompile(`(?i)level\s*[0-9]+`)

	// levelPrefix[n] and levelAnywhere[n] rank a lowercased title for level n.
	levelPrefix   [10]*regexp.Regexp
	levelAnywhere [10]*regexp.Regexp
)

func init() {
	for n := 1; n <= 9; n++ {
		levelPrefix[n] = regexp.MustCompile(`^level\s*` + strconv.Itoa(n) + `\b`)
		levelAnywhere[n] = regexp.MustCompile(`level\s*` + strconv.Itoa(n) + `\b`)
	}
}

// Suggestion is one ranked search result.
type Suggestion struct {
	model.Course
	// LevelHint is the first "Level N" token of the title, or empty.
	LevelHint string `json:"level_hint,omitempty"`
}

// Matcher searches a fixed corpus. It is safe for concurrent use.
type Matcher struct {
	corpus []model.Course
	limit  int
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLimit caps the number of suggestions. Zero or less means unlimited.
func WithLimit(n int) MatcherOption {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

// NewMatcher builds a Matcher over courses. Courses sharing an exact title
// are collapsed to the first occurrence.
func NewMatcher(courses []model.Course, opts ...MatcherOption) *Matcher {
	m := &Matcher{corpus: Corpus(courses)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Len returns the corpus size.
func (m *Matcher) Len() int { return len(m.corpus) }

// Search returns the ranked suggestions for query, capped by the limit.
func (m *Matcher) Search(query string) []Suggestion {
	out := Search(query, m.corpus)
	if m.limit > 0 && len(out) > m.limit {
		out = out[:m.limit]
	}
	return out
}

// Corpus deduplicates courses by exact title, first occurrence wins.
func Corpus(courses []model.Course) []model.Course {
	seen := make(map[string]struct{}, len(courses))
	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.Title]; ok {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Search matches query against corpus. The query is trimmed and lowercased;
// an empty or unmatched query yields an empty result. A level query ("level 2",
// "Level2" or a bare "2") also matches titles naming that level, and those
// rank first. Ties keep corpus order.
func Search(query string, corpus []model.Course) []Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Suggestion{}
	}
	level := QueryLevel(q)

	type ranked struct {
		s   Suggestion
		key [4]int
	}
	var hits []ranked
	for _, c := range corpus {
		title := strings.ToLower(c.Title)
		if !(level > 0 && titleLevel(title) == level) && !strings.Contains(title, q) {
			continue
		}
		hits = append(hits, ranked{
			s:   Suggestion{Course: c, LevelHint: LevelHint(c.Title)},
			key: rankKey(title, q, level),
		})
	}

	slices.SortStableFunc(hits, func(a, b ranked) int {
		return slices.Compare(a.key[:], b.key[:])
	})

	out := make([]Suggestion, len(hits))
	for i, h := range hits {
		out[i] = h.s
	}
	return out
}

// QueryLevel extracts the level a lowercased query asks for, or 0.
func QueryLevel(q string) int {
	if m := queryLevelPattern.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if bareLevelPattern.MatchString(q) {
		n, _ := strconv.Atoi(q)
		return n
	}
	return 0
}

// LevelHint returns the first "Level N" token of title as written.
func LevelHint(title string) string {
	return levelHintPattern.FindString(title)
}

// titleLevel returns the number of the first level token in title, or 0.
func titleLevel(title string) int {
	m := titleLevelPattern.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// rankKey orders hits: title opens with the level, names the level, equals
// the query, starts with the query. Lower sorts first.
func rankKey(title, q string, level int) [4]int {
	var key [4]int
	if level > 0 {
		key[0] = miss(levelPrefix[level].MatchString(title))
		key[1] = miss(levelAnywhere[level].MatchString(title))
	}
	key[2] = miss(title == q)
	key[3] = miss(strings.HasPrefix(title, q))
	return key
}

func miss(hit bool) int {
	if hit {
		return 0
	}
	return 1
}

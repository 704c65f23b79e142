package catalogcheck

import "time"

// Config holds the options of one catalog-check run.
type Config struct {
	CatalogPath string        // YAML catalog to validate
	Category    string        // category to resolve and print
	Filter      string        // narrows Category
	Query       string        // one-shot search
	Slug        string        // slug lookup
	ID          int           // id lookup, 0 to skip
	Limit       int           // caps search results, 0 for all
	Interactive bool          // read queries from stdin
	Debounce    time.Duration // quiet period of interactive search
	BaseURL     string        // running service to verify, empty to skip
	Timeout     time.Duration // HTTP request timeout
	Verbose     bool          // debug logging
}

// Stats summarises a run.
type Stats struct {
	Courses     int
	Categories  int
	Resolved    int
	Suggestions int
	Lookups     int
	Answered    int
	Verified    int
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
}

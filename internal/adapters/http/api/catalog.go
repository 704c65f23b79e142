package api

import (
	"context"
	"net/http"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/search"
	"github.com/okian/coursebook/pkg/logger"
)

// CatalogDependencies defines the read operations behind the browse pages.
type CatalogDependencies interface {
	Categories(ctx context.Context) ([]model.CategorySummary, error)
	ResolveCategory(ctx context.Context, key, filter string) ([]model.AnnotatedCourse, error)
	Search(ctx context.Context, query string) ([]search.Suggestion, error)
}

// CatalogHandler handles category, course and search requests.
type CatalogHandler struct {
	deps   CatalogDependencies
	logger logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
// A nil logger discards output.
func NewCatalogHandler(deps CatalogDependencies, l logger.Logger) *CatalogHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &CatalogHandler{deps: deps, logger: l}
}

type categoriesResponse struct {
	Categories []model.CategorySummary `json:"categories"`
}

type coursesResponse struct {
	Category model.Category          `json:"category"`
	Filter   string                  `json:"filter,omitempty"`
	Courses  []model.AnnotatedCourse `json:"courses"`
}

// HandleCategories handles GET /categories requests.
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	sums, err := h.deps.Categories(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "api.categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: sums})
}

// HandleCourses handles GET /courses?category={key}&q={filter} requests.
// A missing category lists ALL.
func (h *CatalogHandler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("category")
	filter := r.URL.Query().Get("q")

	courses, err := h.deps.ResolveCategory(r.Context(), key, filter)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "api.courses", err)
		return
	}
	if courses == nil {
		courses = []model.AnnotatedCourse{}
	}
	c, _ := model.ParseCategory(key)
	writeJSON(w, http.StatusOK, coursesResponse{Category: c, Filter: filter, Courses: courses})
}

// HandleSearch handles GET /search?q={query} requests.
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	out, err := h.deps.Search(r.Context(), q)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, "api.search", err)
		return
	}
	if out == nil {
		out = []search.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Query: q, Results: out})
}

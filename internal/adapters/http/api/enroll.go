package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/pkg/logger"
)

// maxFormBytes bounds an enrollment request body.
const maxFormBytes = 64 << 10

// EnrollDependencies defines the operations behind the enrollment page.
type EnrollDependencies interface {
	ResolveBySlug(ctx context.Context, slug string) (model.CourseDetail, error)
	ResolveByID(ctx context.Context, id int) (model.CourseDetail, error)
	Enroll(ctx context.Context, e model.Enrollment) (model.Receipt, error)
}

// EnrollHandler handles course detail lookups and form submissions.
type EnrollHandler struct {
	deps   EnrollDependencies
	logger logger.Logger
}

// NewEnrollHandler creates a new enrollment handler.
// A nil logger discards output.
func NewEnrollHandler(deps EnrollDependencies, l logger.Logger) *EnrollHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &EnrollHandler{deps: deps, logger: l}
}

type ackResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

// HandleBySlug handles GET /enroll/{slug} requests.
func (h *EnrollHandler) HandleBySlug(w http.ResponseWriter, r *http.Request) {
	const op = "api.enroll_slug"
	s := r.PathValue("slug")
	if s == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	d, err := h.deps.ResolveBySlug(r.Context(), s)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleByID handles GET /enroll?id={id} requests, the fallback link form.
func (h *EnrollHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.enroll_id"
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("id must be an integer")))
		return
	}
	d, err := h.deps.ResolveByID(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleSubmit handles POST /api/enrollments requests.
func (h *EnrollHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.enroll_submit"
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var form model.Enrollment
	dec := json.NewDecoder(io.LimitReader(r.Body, maxFormBytes))
	if err := dec.Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rc, err := h.deps.Enroll(r.Context(), form)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, op, err)
		return
	}

	switch {
	case rc.Duplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	case rc.Queued:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "queued", Reference: rc.Reference})
	default:
		writeJSON(w, http.StatusOK, ackResponse{Status: "sent", Reference: rc.Reference})
	}
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/coursebook/internal/app"
	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/search"
	"github.com/okian/coursebook/pkg/logger"
)

// Dependencies required by HTTP handlers. The service package satisfies it;
// tests supply fakes.
type Dependencies interface {
	CatalogDependencies
	EnrollDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	catalogHandler *CatalogHandler
	enrollHandler  *EnrollHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	logger logger.Logger
}

// WithLogger sets the logger used for unexpected handler errors.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	cfg := serverConfig{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		catalogHandler: NewCatalogHandler(deps, cfg.logger),
		enrollHandler:  NewEnrollHandler(deps, cfg.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /categories", MetricsMiddleware(s.catalogHandler.HandleCategories, "categories"))
	mux.HandleFunc("GET /courses", MetricsMiddleware(s.catalogHandler.HandleCourses, "courses"))
	mux.HandleFunc("GET /search", MetricsMiddleware(s.catalogHandler.HandleSearch, "search"))

	mux.HandleFunc("GET /enroll/{slug}", MetricsMiddleware(s.enrollHandler.HandleBySlug, "enroll_slug"))
	mux.HandleFunc("GET /enroll", MetricsMiddleware(s.enrollHandler.HandleByID, "enroll_id"))
	mux.HandleFunc("POST /api/enrollments", MetricsMiddleware(s.enrollHandler.HandleSubmit, "enrollments"))
	mux.HandleFunc("POST /api/send-email", MetricsMiddleware(s.enrollHandler.HandleSubmit, "send_email"))
}

type errorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// notifyFailedMessage is shown instead of transport details.
const notifyFailedMessage = "Failed to submit form. Please try again later."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain and service errors into responses.
// Unexpected errors are logged to l and answered with a generic 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, l logger.Logger, op string, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Code:    "validation_error",
			Message: model.ErrValidation.Error(),
			Fields:  ve.Fields,
		})
	case errors.Is(err, model.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case errors.Is(err, model.ErrNotifyTransport):
		writeJSON(w, http.StatusBadGateway, errorResponse{Code: "notify_failed", Message: notifyFailedMessage})
	default:
		l.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}

// suggestionsResponse wraps search results.
type suggestionsResponse struct {
	Query   string              `json:"query"`
	Results []search.Suggestion `json:"results"`
}

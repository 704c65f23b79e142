package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coursebook/internal/adapters/http/api"
	service "github.com/okian/coursebook/internal/app"
	"github.com/okian/coursebook/internal/domain/model"
	"github.com/okian/coursebook/internal/domain/search"
	"github.com/okian/coursebook/pkg/logger"
)

// mockDeps implements api.Dependencies.
type mockDeps struct {
	courses   []model.AnnotatedCourse
	lastKey   string
	lastQuery string
	enrollErr error
	receipt   model.Receipt
	submitted []model.Enrollment
}

func (m *mockDeps) Categories(context.Context) ([]model.CategorySummary, error) {
	return []model.CategorySummary{
		{Key: model.CategoryAll, Name: model.CategoryAll.Name(), Count: 3},
		{Key: model.CategoryTaxi, Name: model.CategoryTaxi.Name(), Count: 1},
	}, nil
}

func (m *mockDeps) ResolveCategory(_ context.Context, key, _ string) ([]model.AnnotatedCourse, error) {
	m.lastKey = key
	if _, err := model.ParseCategory(key); err != nil {
		return nil, err
	}
	return m.courses, nil
}

func (m *mockDeps) Search(_ context.Context, q string) ([]search.Suggestion, error) {
	m.lastQuery = q
	if q == "" {
		return nil, nil
	}
	return []search.Suggestion{{Course: model.Course{ID: 1, Title: "MOT Level 2"}, LevelHint: "Level 2"}}, nil
}

func (m *mockDeps) ResolveBySlug(_ context.Context, s string) (model.CourseDetail, error) {
	if s != "mot-level-2" {
		return model.CourseDetail{}, fmt.Errorf("%w: slug %q", model.ErrNotFound, s)
	}
	return model.CourseDetail{Course: model.Course{ID: 1, Title: "MOT Level 2"}, Slug: s, Source: model.CategorySEG}, nil
}

func (m *mockDeps) ResolveByID(_ context.Context, id int) (model.CourseDetail, error) {
	if id != 1 {
		return model.CourseDetail{}, fmt.Errorf("%w: id %d", model.ErrNotFound, id)
	}
	return model.CourseDetail{Course: model.Course{ID: 1, Title: "MOT Level 2"}, Slug: "mot-level-2"}, nil
}

func (m *mockDeps) Enroll(_ context.Context, e model.Enrollment) (model.Receipt, error) {
	m.submitted = append(m.submitted, e)
	if m.enrollErr != nil {
		return model.Receipt{}, m.enrollErr
	}
	return m.receipt, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

const validForm = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"0700","course":"MOT Level 2","terms":true}`

func TestServer_Register(t *testing.T) {
	Convey("Given a registered server", t, func() {
		deps := &mockDeps{courses: []model.AnnotatedCourse{
			{Course: model.Course{ID: 49, Title: "Route Planning"}, DisplayTitle: "Route Planning", Badge: "TAXI", Source: model.CategoryTaxi},
		}}
		mux := newMux(deps)

		Convey("Then GET /healthz reports ok", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["status"], ShouldEqual, "ok")
		})

		Convey("Then GET /metrics serves the registry", func() {
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then GET /stats returns the provider stats", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["started"], ShouldEqual, true)
		})

		Convey("Then a wrong method is rejected", func() {
			w := do(mux, http.MethodPost, "/categories", "")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then registering on a nil mux panics", func() {
			So(func() { api.NewServer(deps).Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}

func TestCatalogHandler(t *testing.T) {
	Convey("Given the catalog routes", t, func() {
		deps := &mockDeps{courses: []model.AnnotatedCourse{
			{Course: model.Course{ID: 49, Title: "Route Planning"}, DisplayTitle: "Route Planning", Badge: "TAXI", Source: model.CategoryTaxi},
		}}
		mux := newMux(deps)

		Convey("When listing categories", func() {
			w := do(mux, http.MethodGet, "/categories", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			cats := decode(w)["categories"].([]any)
			So(cats, ShouldHaveLength, 2)
			So(cats[1].(map[string]any)["name"], ShouldEqual, "Taxi & Private Hire")
		})

		Convey("When listing a category's courses", func() {
			w := do(mux, http.MethodGet, "/courses?category=TAXI&q=route", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["category"], ShouldEqual, "TAXI")
			So(body["filter"], ShouldEqual, "route")
			So(body["courses"].([]any)[0].(map[string]any)["badge"], ShouldEqual, "TAXI")
		})

		Convey("When the category key contains a space", func() {
			w := do(mux, http.MethodGet, "/courses?category=PRO+QUAL", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastKey, ShouldEqual, "PRO QUAL")
		})

		Convey("When no category is given it lists ALL", func() {
			w := do(mux, http.MethodGet, "/courses", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["category"], ShouldEqual, "ALL")
		})

		Convey("When the category is unknown", func() {
			w := do(mux, http.MethodGet, "/courses?category=BOGUS", "")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "unknown_category")
		})

		Convey("When searching", func() {
			w := do(mux, http.MethodGet, "/search?q=level+2", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastQuery, ShouldEqual, "level 2")
			res := decode(w)["results"].([]any)
			So(res, ShouldHaveLength, 1)
			So(res[0].(map[string]any)["level_hint"], ShouldEqual, "Level 2")
		})

		Convey("When searching with an empty query the results are an empty list", func() {
			w := do(mux, http.MethodGet, "/search", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"results":[]`)
		})
	})
}

func TestEnrollHandler(t *testing.T) {
	Convey("Given the enrollment routes", t, func() {
		deps := &mockDeps{receipt: model.Receipt{Reference: "ref-1"}}
		mux := newMux(deps)

		Convey("When resolving a known slug", func() {
			w := do(mux, http.MethodGet, "/enroll/mot-level-2", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["id"], ShouldEqual, 1.0)
		})

		Convey("When resolving an unknown slug", func() {
			w := do(mux, http.MethodGet, "/enroll/nope", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decode(w)["code"], ShouldEqual, "not_found")
		})

		Convey("When resolving by id", func() {
			So(do(mux, http.MethodGet, "/enroll?id=1", "").Code, ShouldEqual, http.StatusOK)
			So(do(mux, http.MethodGet, "/enroll?id=2", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodGet, "/enroll?id=abc", "").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When a valid form is submitted", func() {
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decode(w)
			So(body["status"], ShouldEqual, "sent")
			So(body["reference"], ShouldEqual, "ref-1")
			So(deps.submitted[0].Terms, ShouldBeTrue)
		})

		Convey("When the legacy send-email path is used", func() {
			w := do(mux, http.MethodPost, "/api/send-email", validForm)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the submission is queued", func() {
			deps.receipt = model.Receipt{Reference: "ref-2", Queued: true}
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusAccepted)
			So(decode(w)["status"], ShouldEqual, "queued")
		})

		Convey("When the submission is a duplicate", func() {
			deps.receipt = model.Receipt{Duplicate: true}
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(decode(w)["duplicate"], ShouldEqual, true)
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/api/enrollments", "{not json")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decode(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("When the form is invalid", func() {
			deps.enrollErr = &model.ValidationError{Fields: []model.FieldError{{Field: "terms", Message: "must be accepted"}}}
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
			body := decode(w)
			So(body["code"], ShouldEqual, "validation_error")
			So(body["fields"].([]any)[0].(map[string]any)["field"], ShouldEqual, "terms")
		})

		Convey("When delivery fails the message is generic", func() {
			deps.enrollErr = fmt.Errorf("%w: relay returned 503", model.ErrNotifyTransport)
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusBadGateway)
			body := decode(w)
			So(body["code"], ShouldEqual, "notify_failed")
			So(body["message"], ShouldEqual, "Failed to submit form. Please try again later.")
		})

		Convey("When the queue is full", func() {
			deps.enrollErr = service.ErrBackpressure
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(decode(w)["code"], ShouldEqual, "backpressure")
		})

		Convey("When an unexpected error occurs", func() {
			deps.enrollErr = errors.New("boom")
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldNotContainSubstring, "boom")
		})
	})
}

func TestServer_UnexpectedErrorLogging(t *testing.T) {
	Convey("Given a server with an injected logger", t, func() {
		var buf strings.Builder
		l, err := logger.New(&buf, logger.FormatJSON)
		So(err, ShouldBeNil)

		deps := &mockDeps{enrollErr: errors.New("relay exploded")}
		mux := http.NewServeMux()
		api.NewServer(deps, api.WithLogger(l)).Register(context.Background(), mux)

		Convey("When a submission fails unexpectedly", func() {
			w := do(mux, http.MethodPost, "/api/enrollments", validForm)

			Convey("Then the client sees a generic 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decode(w)["code"], ShouldEqual, "internal_error")
				So(w.Body.String(), ShouldNotContainSubstring, "relay exploded")
			})

			Convey("Then the cause goes to the injected logger", func() {
				So(buf.String(), ShouldContainSubstring, "relay exploded")
				So(buf.String(), ShouldContainSubstring, "api.enroll_submit")
			})
		})
	})

	Convey("Given handlers built without a logger", t, func() {
		deps := &mockDeps{enrollErr: errors.New("boom")}
		h := api.NewEnrollHandler(deps, nil)

		Convey("Then an unexpected error is answered without a global logger", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/enrollments", strings.NewReader(validForm))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			So(func() { h.HandleSubmit(w, req) }, ShouldNotPanic)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestChain(t *testing.T) {
	Convey("Given the middleware chain", t, func() {
		var buf strings.Builder
		l, err := logger.New(&buf, logger.FormatJSON)
		So(err, ShouldBeNil)

		mux := http.NewServeMux()
		mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
		mux.HandleFunc("GET /ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
		h := api.Chain(mux, l, []string{"http://localhost:3000"})

		Convey("Then requests are logged with a request id", func() {
			w := do(h, http.MethodGet, "/ok", "")
			So(w.Code, ShouldEqual, http.StatusNoContent)
			So(buf.String(), ShouldContainSubstring, `"path":"/ok"`)
			So(buf.String(), ShouldContainSubstring, `"request_id"`)
		})

		Convey("Then panics are recovered", func() {
			w := do(h, http.MethodGet, "/panic", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})

		Convey("Then an allowed origin gets CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
			req.Header.Set("Origin", "http://localhost:3000")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "http://localhost:3000")
		})

		Convey("Then other origins do not", func() {
			req := httptest.NewRequest(http.MethodGet, "/ok", http.NoBody)
			req.Header.Set("Origin", "http://evil.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func TestKindErrors(t *testing.T) {
	Convey("Given a wrapped kind error", t, func() {
		cause := errors.New("eof")
		err := api.WrapKind("api.op", api.ErrBadRequest, cause)

		Convey("Then both the kind and the cause match", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: eof")
		})

		Convey("Then a bare kind renders without a cause", func() {
			So(api.NewKind("api.op", api.ErrBackpressure).Error(), ShouldEqual, "api.op: backpressure")
		})
	})
}

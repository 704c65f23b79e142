package catalogcheck

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coursebook/internal/adapters/http/api"
	"github.com/okian/coursebook/internal/adapters/repository"
	service "github.com/okian/coursebook/internal/app"
	"github.com/okian/coursebook/pkg/logger"
)

const sampleCatalog = "../../data/catalog.yaml"

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given the sample catalog", t, func() {
		ctx := context.Background()
		var out bytes.Buffer
		cfg := &Config{CatalogPath: sampleCatalog}

		Convey("When running with no queries", func() {
			err := Run(ctx, cfg, strings.NewReader(""), &out)

			Convey("Then it prints every category", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, "KEY")
				So(out.String(), ShouldContainSubstring, "PRO QUAL")
				So(out.String(), ShouldContainSubstring, "Taxi & Private Hire")
			})
		})

		Convey("When resolving a category with a filter", func() {
			cfg.Category = "TAXI"
			cfg.Filter = "private hire"
			So(Run(ctx, cfg, strings.NewReader(""), &out), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Private Hire Route Planning")
			So(out.String(), ShouldNotContainSubstring, "Disability Awareness")
		})

		Convey("When searching and looking up", func() {
			cfg.Query = "level 4"
			cfg.Slug = "sqa-passenger-transport-award"
			cfg.ID = 16
			So(Run(ctx, cfg, strings.NewReader(""), &out), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, `search "level 4"`)
			So(out.String(), ShouldContainSubstring, "Taxi & Private Hire")
			So(out.String(), ShouldContainSubstring, "PROQUAL")
		})

		Convey("When the slug is unknown", func() {
			cfg.Slug = "no-such-course"
			err := Run(ctx, cfg, strings.NewReader(""), &out)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "slug lookup failed")
		})

		Convey("When the category is unknown", func() {
			cfg.Category = "BOGUS"
			So(Run(ctx, cfg, strings.NewReader(""), &out), ShouldNotBeNil)
		})

		Convey("When the catalog file is missing", func() {
			cfg.CatalogPath = "does-not-exist.yaml"
			err := Run(ctx, cfg, strings.NewReader(""), &out)
			So(errors.Is(err, repository.ErrLoadCatalog), ShouldBeTrue)
		})
	})
}

func TestInteractive(t *testing.T) {
	Convey("Given interactive mode with a short debounce", t, func() {
		ctx := context.Background()
		var out bytes.Buffer
		cfg := &Config{
			CatalogPath: sampleCatalog,
			Interactive: true,
			Debounce:    20 * time.Millisecond,
		}

		Convey("When queries arrive faster than the debounce", func() {
			in := strings.NewReader("lev\n\nlevel 3\n")
			So(Run(ctx, cfg, in, &out), ShouldBeNil)

			Convey("Then only the last one is searched", func() {
				So(out.String(), ShouldContainSubstring, `search "level 3"`)
				So(out.String(), ShouldNotContainSubstring, `search "lev"`)
			})
		})
	})
}

func TestVerifyService(t *testing.T) {
	Convey("Given a service serving the same catalog", t, func() {
		ctx := context.Background()
		store, err := repository.LoadFile(ctx, sampleCatalog)
		So(err, ShouldBeNil)
		svc := service.New(service.WithStore(store))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()

		mux := http.NewServeMux()
		api.NewServer(svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		want, err := svc.Categories(ctx)
		So(err, ShouldBeNil)

		Convey("Then verification passes", func() {
			n, err := verifyService(ctx, &Config{BaseURL: srv.URL}, want)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, len(want))
		})

		Convey("Then a different expectation is a mismatch", func() {
			want[1].Count++
			_, err := verifyService(ctx, &Config{BaseURL: srv.URL}, want)
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("Then verification fails on the health check", func() {
			_, err := verifyService(context.Background(), &Config{BaseURL: srv.URL, Timeout: time.Second}, nil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "503")
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var out bytes.Buffer
		ShowHelp(&out)
		So(out.String(), ShouldContainSubstring, "-interactive")
	})
}

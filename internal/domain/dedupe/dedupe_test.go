package dedupe_test

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/coursebook/internal/domain/dedupe"
)

func TestGuard(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new Guard", t, func() {
		g := dedupe.New()

		Convey("When a submission is new", func() {
			seen := g.SeenAndRecord(ctx, "a")

			Convey("Then it is recorded", func() {
				So(seen, ShouldBeFalse)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the same submission repeats", func() {
			g.SeenAndRecord(ctx, "a")
			seen := g.SeenAndRecord(ctx, "a")

			Convey("Then it is reported as seen", func() {
				So(seen, ShouldBeTrue)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a submission is unrecorded", func() {
			g.SeenAndRecord(ctx, "a")
			g.Unrecord(ctx, "a")
			g.Unrecord(ctx, "missing")

			Convey("Then it can be recorded again", func() {
				So(g.Size(), ShouldEqual, 0)
				So(g.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a Guard bounded to two entries", t, func() {
		g := dedupe.New(dedupe.WithMaxSize(2))
		g.SeenAndRecord(ctx, "a")
		g.SeenAndRecord(ctx, "b")
		g.SeenAndRecord(ctx, "c")

		Convey("Then the oldest entry is evicted", func() {
			So(g.Size(), ShouldEqual, 2)
			So(g.SeenAndRecord(ctx, "c"), ShouldBeTrue)
			So(g.SeenAndRecord(ctx, "a"), ShouldBeFalse)
		})
	})

	Convey("Given a Guard with a one minute window", t, func() {
		now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
		g := dedupe.New(dedupe.WithWindow(time.Minute), dedupe.WithClock(func() time.Time { return now }))
		g.SeenAndRecord(ctx, "a")

		Convey("When the window passes", func() {
			now = now.Add(2 * time.Minute)

			Convey("Then the fingerprint is forgotten", func() {
				So(g.SeenAndRecord(ctx, "a"), ShouldBeFalse)
				So(g.Size(), ShouldEqual, 1)
			})
		})

		Convey("When still inside the window", func() {
			now = now.Add(30 * time.Second)

			Convey("Then it is a duplicate", func() {
				So(g.SeenAndRecord(ctx, "a"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent submissions of the same key", t, func() {
		g := dedupe.New()
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			fresh int
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if !g.SeenAndRecord(ctx, "same") {
					mu.Lock()
					fresh++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one is recorded as new", func() {
			So(fresh, ShouldEqual, 1)
		})
	})
}

func TestFingerprint(t *testing.T) {
	Convey("Given submissions", t, func() {
		a := dedupe.Fingerprint(" Jane@Example.com ", "Level 2 Award")
		b := dedupe.Fingerprint("jane@example.com", "Level 2 Award")
		c := dedupe.Fingerprint("jane@example.com", "Level 3 Award")

		So(a, ShouldEqual, b)
		So(a, ShouldNotEqual, c)
		So(a, ShouldHaveLength, 64)
		So(dedupe.Fingerprint("a", "bc"), ShouldNotEqual, dedupe.Fingerprint("ab", "c"))
	})
}

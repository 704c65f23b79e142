package search

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDebouncer(t *testing.T) {
	Convey("Given a debouncer with a short quiet period", t, func() {
		got := make(chan string, 8)
		d := NewDebouncer(20*time.Millisecond, func(q string) { got <- q })
		defer d.Stop()

		Convey("When values arrive faster than the quiet period", func() {
			d.Push("m")
			d.Push("ma")
			d.Push("mat")

			Convey("Then only the last value is delivered", func() {
				select {
				case q := <-got:
					So(q, ShouldEqual, "mat")
				case <-time.After(time.Second):
					So("timeout", ShouldBeEmpty)
				}
				select {
				case q := <-got:
					So(q, ShouldBeEmpty)
				case <-time.After(100 * time.Millisecond):
				}
			})
		})

		Convey("When stopped before the quiet period ends", func() {
			d.Push("maths")
			d.Stop()
			d.Push("english")

			Convey("Then nothing is delivered", func() {
				select {
				case q := <-got:
					So(q, ShouldBeEmpty)
				case <-time.After(100 * time.Millisecond):
				}
			})
		})
	})

	Convey("Given a non-positive delay", t, func() {
		d := NewDebouncer(0, func(string) {})
		So(d.delay, ShouldEqual, DefaultDebounce)
	})
}

package traceload

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOverlapNs(t *testing.T) {
	Convey("An interval fully contained in the window", t, func() {
		iv := Interval{StartNs: 120, EndNs: 180, CPU: 0}

		Convey("should contribute its full duration.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, iv.DurationNs())
		})
	})

	Convey("An interval spanning the whole window", t, func() {
		iv := Interval{StartNs: 0, EndNs: 1000, CPU: 0}

		Convey("should contribute the window size.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 100)
		})
	})

	Convey("An interval overhanging the window start", t, func() {
		iv := Interval{StartNs: 50, EndNs: 150, CPU: 0}

		Convey("should contribute only the contained part.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 50)
		})
	})

	Convey("An interval overhanging the window end", t, func() {
		iv := Interval{StartNs: 150, EndNs: 250, CPU: 0}

		Convey("should contribute only the contained part.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 50)
		})
	})

	Convey("An interval entirely before the window", t, func() {
		iv := Interval{StartNs: 10, EndNs: 90, CPU: 0}

		Convey("should contribute nothing.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 0)
		})
	})

	Convey("An interval entirely after the window", t, func() {
		iv := Interval{StartNs: 210, EndNs: 290, CPU: 0}

		Convey("should contribute nothing.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 0)
		})
	})

	Convey("An interval ending exactly at the window start", t, func() {
		iv := Interval{StartNs: 50, EndNs: 100, CPU: 0}

		Convey("should contribute nothing.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 0)
		})
	})

	Convey("An interval starting exactly at the window end", t, func() {
		iv := Interval{StartNs: 200, EndNs: 250, CPU: 0}

		Convey("should contribute nothing.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 0)
		})
	})

	Convey("A zero-length interval", t, func() {
		iv := Interval{StartNs: 150, EndNs: 150, CPU: 0}

		Convey("should contribute nothing.", func() {
			So(OverlapNs(iv, 100, 200), ShouldEqual, 0)
		})
	})
}

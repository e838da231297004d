package trace

import (
	"errors"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCSV(t *testing.T) {
	Convey("Parsing a well-formed CSV stream", t, func() {
		result, err := ParseCSV(strings.NewReader(
			"ts_ns,ts_end_ns,ucpu\n0,110,0\n88,180,1\n"))

		Convey("should not fail.", func() {
			So(err, ShouldBeNil)
		})

		Convey("should split header and rows.", func() {
			So(result.Columns, ShouldResemble, []string{"ts_ns", "ts_end_ns", "ucpu"})
			So(result.Len(), ShouldEqual, 2)
			So(result.Rows[1], ShouldResemble, []string{"88", "180", "1"})
		})

		Convey("should find columns by name.", func() {
			idx, ok := result.ColumnIndex("ucpu")
			So(ok, ShouldBeTrue)
			So(idx, ShouldEqual, 2)

			_, ok = result.ColumnIndex("no_such_column")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Parsing an empty stream", t, func() {
		result, err := ParseCSV(strings.NewReader(""))

		Convey("should yield an empty result.", func() {
			So(err, ShouldBeNil)
			So(result.Columns, ShouldBeEmpty)
			So(result.Len(), ShouldEqual, 0)
		})
	})

	Convey("Parsing a ragged CSV stream", t, func() {
		_, err := ParseCSV(strings.NewReader("a,b\n1,2,3\n"))

		Convey("should fail.", func() {
			So(err, ShouldNotBeNil)
		})
	})
}

func TestQueryArgs(t *testing.T) {
	Convey("Building the batch-mode argument list", t, func() {
		args := QueryArgs("/tmp/q.sql", "/traces/trace_0", nil)

		Convey("should pass the query file before the trace.", func() {
			So(args, ShouldResemble, []string{"-q", "/tmp/q.sql", "/traces/trace_0"})
		})
	})

	Convey("Building the argument list with extra arguments", t, func() {
		args := QueryArgs("/tmp/q.sql", "/traces/trace_0", []string{"--full-sort"})

		Convey("should insert them before the trace path.", func() {
			So(args, ShouldResemble, []string{"-q", "/tmp/q.sql", "--full-sort", "/traces/trace_0"})
		})
	})
}

func TestNewProcessor(t *testing.T) {
	Convey("Creating a processor with a missing binary", t, func() {
		_, err := NewProcessor(Config{
			BinaryPath: "/does/not/exist/trace_processor",
			TracePath:  os.DevNull,
		})

		Convey("should fail with a ProviderError.", func() {
			So(err, ShouldNotBeNil)
			var provErr *ProviderError
			So(errors.As(err, &provErr), ShouldBeTrue)
			So(provErr.Op, ShouldContainSubstring, "binary")
		})

		Convey("should preserve the original cause.", func() {
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})

	Convey("Creating a processor with a missing trace file", t, func() {
		_, err := NewProcessor(Config{
			BinaryPath: os.DevNull,
			TracePath:  "/does/not/exist/trace_0",
		})

		Convey("should fail with a ProviderError.", func() {
			var provErr *ProviderError
			So(errors.As(err, &provErr), ShouldBeTrue)
			So(provErr.Op, ShouldContainSubstring, "trace file")
		})
	})
}

func TestEmbeddedQueries(t *testing.T) {
	Convey("The embedded queries", t, func() {
		Convey("should select the running-interval columns.", func() {
			So(ThreadRunningSlicesQuery, ShouldContainSubstring, "ts_ns")
			So(ThreadRunningSlicesQuery, ShouldContainSubstring, "ts_end_ns")
			So(ThreadRunningSlicesQuery, ShouldContainSubstring, "ucpu")
		})

		Convey("should select the logcat columns.", func() {
			So(LogcatQuery, ShouldContainSubstring, "prio")
			So(LogcatQuery, ShouldContainSubstring, "msg")
		})
	})
}

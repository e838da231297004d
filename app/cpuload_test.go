package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/tracelab/traceload"
	"github.com/tracelab/traceload/trace"

	. "github.com/smartystreets/goconvey/convey"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Query(query string) (*trace.Result, error) {
	args := m.Called(query)
	res, _ := args.Get(0).(*trace.Result)
	return res, args.Error(1)
}

func runningIntervalsResult() *trace.Result {
	return &trace.Result{
		Columns: []string{"ts_ns", "ts_end_ns", "ucpu"},
		Rows: [][]string{
			{"0", "110", "0"},
			{"88", "180", "1"},
			{"112", "200", "2"},
			{"150", "180", "3"},
		},
	}
}

func TestRunCPULoad(t *testing.T) {
	Convey("Running the CPU load pipeline with derived window parameters", t, func() {
		provider := new(mockProvider)
		defer provider.AssertExpectations(t)
		provider.On("Query", trace.ThreadRunningSlicesQuery).
			Return(runningIntervalsResult(), nil).Once()

		dir, err := os.MkdirTemp("", "traceload-app-test-*")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		var out bytes.Buffer
		// durations below one ms are not expressible via the ms flags, use
		// the auto path with a point count that reproduces them
		err = runCPULoad(provider, cpuLoadParams{
			points:       2,
			outputPrefix: filepath.Join(dir, "cpu_load"),
			previewRows:  3,
		}, &out)

		Convey("should not fail.", func() {
			So(err, ShouldBeNil)
		})

		Convey("should print the derived window parameters.", func() {
			So(out.String(), ShouldContainSubstring, "Window size: 0.00 ms")
			So(out.String(), ShouldContainSubstring, "Windows:     2")
		})

		Convey("should preview both tables.", func() {
			So(out.String(), ShouldContainSubstring, "Overall CPU load (2 samples):")
			So(out.String(), ShouldContainSubstring, "Per-CPU load (8 samples):")
		})

		Convey("should save both CSV files.", func() {
			So(out.String(), ShouldContainSubstring, "Saved ")
			_, err := os.Stat(filepath.Join(dir, "cpu_load_overall.csv"))
			So(err, ShouldBeNil)
			_, err = os.Stat(filepath.Join(dir, "cpu_load_per_core.csv"))
			So(err, ShouldBeNil)
		})
	})

	Convey("Running the pipeline against a failing provider", t, func() {
		provider := new(mockProvider)
		defer provider.AssertExpectations(t)

		underlying := &trace.ProviderError{Op: "execute the query", Err: errors.New("boom")}
		provider.On("Query", trace.ThreadRunningSlicesQuery).
			Return(nil, underlying).Once()

		var out bytes.Buffer
		err := runCPULoad(provider, cpuLoadParams{points: 10}, &out)

		Convey("should propagate the provider failure unchanged.", func() {
			So(err, ShouldNotBeNil)
			var provErr *trace.ProviderError
			So(errors.As(err, &provErr), ShouldBeTrue)
		})
	})

	Convey("Running the pipeline on a result with missing columns", t, func() {
		provider := new(mockProvider)
		defer provider.AssertExpectations(t)
		provider.On("Query", trace.ThreadRunningSlicesQuery).
			Return(&trace.Result{Columns: []string{"ts_ns"}}, nil).Once()

		var out bytes.Buffer
		err := runCPULoad(provider, cpuLoadParams{points: 10}, &out)

		Convey("should fail with ErrInvalidInput.", func() {
			So(errors.Is(err, traceload.ErrInvalidInput), ShouldBeTrue)
		})
	})

	Convey("Running the pipeline with too fine explicit windows", t, func() {
		provider := new(mockProvider)
		defer provider.AssertExpectations(t)

		rows := &trace.Result{
			Columns: []string{"ts_ns", "ts_end_ns", "ucpu"},
			Rows:    [][]string{{"0", "10000000000", "0"}},
		}
		provider.On("Query", trace.ThreadRunningSlicesQuery).
			Return(rows, nil).Once()

		var out bytes.Buffer
		err := runCPULoad(provider, cpuLoadParams{
			windowSizeMs: 1,
			windowStepMs: 1,
		}, &out)

		Convey("should fail with the window count bound before computing.", func() {
			So(errors.Is(err, traceload.ErrWindowCountExceeded), ShouldBeTrue)
		})
	})
}

func TestRunExtractLogcat(t *testing.T) {
	Convey("Running the logcat extraction pipeline", t, func() {
		provider := new(mockProvider)
		defer provider.AssertExpectations(t)
		provider.On("Query", trace.LogcatQuery).Return(&trace.Result{
			Columns: []string{"ts", "prio", "tag", "msg"},
			Rows: [][]string{
				{"100", "4", "init", "starting service"},
			},
		}, nil).Once()

		var outfile, out bytes.Buffer
		err := runExtractLogcat(provider, &outfile, "logcat.txt", &out)

		Convey("should not fail.", func() {
			So(err, ShouldBeNil)
		})

		Convey("should write the formatted entries.", func() {
			So(outfile.String(), ShouldEqual, "100 I/init: starting service\n")
		})

		Convey("should report the entry count.", func() {
			So(out.String(), ShouldContainSubstring, "Extracted 1 logcat entries to logcat.txt")
		})
	})
}

package traceload

import (
	"github.com/targodan/go-errors"
)

// MaxWindows is the upper bound on the number of windows a single
// computation may produce.
const MaxWindows = 2000

// DefaultDesiredPoints is the target number of output points used when no
// explicit window parameters are supplied.
const DefaultDesiredPoints = 200

// WindowSpec describes the sliding windows of one computation run. It is
// derived once by the planner and never mutated.
type WindowSpec struct {
	SizeNs int64
	StepNs int64
	Count  int
}

// StartNs returns the start of window i, relative to the trace origin.
func (w WindowSpec) StartNs(i int) int64 {
	return int64(i) * w.StepNs
}

// EndNs returns the exclusive end of window i, relative to the trace origin.
func (w WindowSpec) EndNs(i int) int64 {
	return w.StartNs(i) + w.SizeNs
}

// Valid reports whether window i lies fully within the covered trace
// duration. Trailing windows reach past the last recorded interval; their
// load values are computed over partially sampled data and are marked
// accordingly instead of being dropped.
func (w WindowSpec) Valid(i int, totalDurationNs int64) bool {
	return w.EndNs(i) <= totalDurationNs
}

// PlanWindows derives a WindowSpec from explicit window parameters.
// It fails with ErrInvalidDuration if totalDurationNs is not positive and
// with a WindowCountExceededError if the parameters would produce more than
// MaxWindows windows.
func PlanWindows(totalDurationNs, sizeNs, stepNs int64) (WindowSpec, error) {
	if totalDurationNs <= 0 {
		return WindowSpec{}, errors.Errorf("%w: total duration is %d ns", ErrInvalidDuration, totalDurationNs)
	}
	if sizeNs <= 0 || stepNs <= 0 {
		return WindowSpec{}, errors.Errorf("%w: window size (%d ns) and step (%d ns) must be positive", ErrInvalidInput, sizeNs, stepNs)
	}

	count := 1
	if totalDurationNs > sizeNs {
		count = int(ceilDiv(totalDurationNs-sizeNs, stepNs)) + 1
	}
	if count > MaxWindows {
		return WindowSpec{}, &WindowCountExceededError{Count: count, Max: MaxWindows}
	}

	return WindowSpec{SizeNs: sizeNs, StepNs: stepNs, Count: count}, nil
}

// PlanWindowsAuto derives non-overlapping, equal-width windows tiling the
// trace such that approximately desiredPoints windows are produced.
func PlanWindowsAuto(totalDurationNs int64, desiredPoints int) (WindowSpec, error) {
	if totalDurationNs <= 0 {
		return WindowSpec{}, errors.Errorf("%w: total duration is %d ns", ErrInvalidDuration, totalDurationNs)
	}
	if desiredPoints <= 0 {
		return WindowSpec{}, errors.Errorf("%w: desired point count must be positive, got %d", ErrInvalidInput, desiredPoints)
	}

	sizeNs := totalDurationNs / int64(desiredPoints)
	if sizeNs <= 0 {
		return WindowSpec{}, errors.Errorf(
			"%w: trace duration %d ns is too short for %d points",
			ErrInvalidDuration, totalDurationNs, desiredPoints)
	}

	return PlanWindows(totalDurationNs, sizeNs, sizeNs)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

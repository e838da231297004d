package traceload

import (
	"fmt"

	"github.com/targodan/go-errors"
)

// ErrInvalidInput is returned when the interval data is empty or malformed.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidDuration is returned when the computed total trace duration is
// not positive.
var ErrInvalidDuration = errors.New("invalid trace duration")

// ErrWindowCountExceeded is the errors.Is target for WindowCountExceededError.
var ErrWindowCountExceeded = errors.New("window count exceeded")

// WindowCountExceededError is returned by the window planner when the
// requested or derived parameters would produce more than MaxWindows
// windows.
type WindowCountExceededError struct {
	Count int
	Max   int
}

func (e *WindowCountExceededError) Error() string {
	return fmt.Sprintf(
		"number of windows (%d) exceeds the maximum allowed (%d), specify a larger window size or a larger window step",
		e.Count, e.Max)
}

func (e *WindowCountExceededError) Is(target error) bool {
	return target == ErrWindowCountExceeded
}

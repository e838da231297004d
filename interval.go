package traceload

import (
	"sort"

	"github.com/targodan/go-errors"
)

// Interval is a single running-interval record: a span of time during which
// a runnable thread occupied the given CPU.
type Interval struct {
	StartNs int64
	EndNs   int64
	CPU     int
}

// DurationNs returns the length of the interval.
func (iv Interval) DurationNs() int64 {
	return iv.EndNs - iv.StartNs
}

// IntervalStore is an immutable, validated collection of Intervals.
// It is the only input of a load computation. Once constructed it is never
// modified, which makes concurrent read access safe without locking.
type IntervalStore struct {
	intervals []Interval
	perCPU    map[int][]Interval
	cpus      []int
	minStart  int64
	maxEnd    int64
}

// NewIntervalStore validates the given intervals and freezes them into a
// store. The slice is copied, the caller may reuse it afterwards.
func NewIntervalStore(intervals []Interval) (*IntervalStore, error) {
	if len(intervals) == 0 {
		return nil, errors.Errorf("%w: no intervals given", ErrInvalidInput)
	}

	s := &IntervalStore{
		intervals: make([]Interval, len(intervals)),
		perCPU:    make(map[int][]Interval),
		minStart:  intervals[0].StartNs,
		maxEnd:    intervals[0].EndNs,
	}
	copy(s.intervals, intervals)

	for i, iv := range s.intervals {
		if iv.StartNs < 0 {
			return nil, errors.Errorf("%w: interval %d has negative start %d", ErrInvalidInput, i, iv.StartNs)
		}
		if iv.EndNs < iv.StartNs {
			return nil, errors.Errorf("%w: interval %d ends (%d) before it starts (%d)", ErrInvalidInput, i, iv.EndNs, iv.StartNs)
		}
		if iv.CPU < 0 {
			return nil, errors.Errorf("%w: interval %d has negative cpu id %d", ErrInvalidInput, i, iv.CPU)
		}

		if iv.StartNs < s.minStart {
			s.minStart = iv.StartNs
		}
		if iv.EndNs > s.maxEnd {
			s.maxEnd = iv.EndNs
		}
		s.perCPU[iv.CPU] = append(s.perCPU[iv.CPU], iv)
	}

	s.cpus = make([]int, 0, len(s.perCPU))
	for cpu := range s.perCPU {
		s.cpus = append(s.cpus, cpu)
	}
	sort.Ints(s.cpus)

	return s, nil
}

// Len returns the number of stored intervals.
func (s *IntervalStore) Len() int {
	return len(s.intervals)
}

// CPUs returns the distinct CPU ids observed in the store, in ascending
// order. The returned slice must not be modified.
func (s *IntervalStore) CPUs() []int {
	return s.cpus
}

// NumCPUs returns the number of distinct CPU ids observed in the store.
func (s *IntervalStore) NumCPUs() int {
	return len(s.cpus)
}

// IntervalsOnCPU returns all intervals recorded on the given CPU, in input
// order. The returned slice must not be modified.
func (s *IntervalStore) IntervalsOnCPU(cpu int) []Interval {
	return s.perCPU[cpu]
}

// MinStartNs returns the earliest interval start in the store.
func (s *IntervalStore) MinStartNs() int64 {
	return s.minStart
}

// MaxEndNs returns the latest interval end in the store.
func (s *IntervalStore) MaxEndNs() int64 {
	return s.maxEnd
}

// TotalDurationNs returns the covered trace duration, i.e. the span between
// the earliest interval start and the latest interval end.
func (s *IntervalStore) TotalDurationNs() int64 {
	return s.maxEnd - s.minStart
}

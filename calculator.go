package traceload

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
)

// ProgressObserver receives completion notifications while a computation is
// running. Implementations must be fast, the calculator invokes them
// synchronously between windows. A panicking observer is logged and ignored,
// it can never fail the computation.
type ProgressObserver interface {
	// WindowCompleted is called once per assembled window, in window order.
	WindowCompleted(index, total int)
}

type nopObserver struct{}

func (nopObserver) WindowCompleted(int, int) {}

// LoadResult holds both output tables of one computation run.
type LoadResult struct {
	Spec            WindowSpec
	TotalDurationNs int64
	// Aggregate has one sample per window, CPU == AggregateCPU.
	Aggregate LoadTable
	// PerCore has NumCPUs samples per window, ordered by window index and
	// CPU id within a window.
	PerCore LoadTable
}

// LoadCalculator drives the load computation: it positions the windows of a
// WindowSpec over a frozen IntervalStore and produces the aggregate and
// per-core load tables.
type LoadCalculator struct {
	store    *IntervalStore
	spec     WindowSpec
	observer ProgressObserver
}

// NewLoadCalculator creates a LoadCalculator for the given store and window
// spec. Progress reporting defaults to a no-op.
func NewLoadCalculator(store *IntervalStore, spec WindowSpec) *LoadCalculator {
	return &LoadCalculator{
		store:    store,
		spec:     spec,
		observer: nopObserver{},
	}
}

// SetObserver installs a progress observer. A nil observer resets to the
// no-op default.
func (c *LoadCalculator) SetObserver(observer ProgressObserver) {
	if observer == nil {
		observer = nopObserver{}
	}
	c.observer = observer
}

// Compute runs the full computation and returns both load tables. Any error
// aborts the entire run, no partial tables are ever returned. Repeated runs
// over the same store and spec yield bit-identical results.
func (c *LoadCalculator) Compute() (*LoadResult, error) {
	if c.store == nil || c.store.Len() == 0 {
		return nil, errors.Errorf("%w: interval store is empty", ErrInvalidInput)
	}
	if c.spec.SizeNs <= 0 || c.spec.StepNs <= 0 || c.spec.Count <= 0 {
		return nil, errors.Errorf(
			"%w: window spec is not positive (size %d ns, step %d ns, count %d)",
			ErrInvalidInput, c.spec.SizeNs, c.spec.StepNs, c.spec.Count)
	}

	origin := c.store.MinStartNs()
	totalDuration := c.store.TotalDurationNs()
	cpus := c.store.CPUs()

	logrus.WithFields(logrus.Fields{
		"windows":   c.spec.Count,
		"cpus":      len(cpus),
		"intervals": c.store.Len(),
	}).Debug("Computing CPU load.")

	// One accumulation goroutine per CPU. Each writes only its own sums
	// slice, the store is frozen, so no synchronization beyond the
	// WaitGroup is needed.
	sums := make([][]int64, len(cpus))
	var wg sync.WaitGroup
	for ci, cpu := range cpus {
		sums[ci] = make([]int64, c.spec.Count)
		wg.Add(1)
		go func(cpu int, out []int64) {
			defer wg.Done()
			for _, iv := range c.store.IntervalsOnCPU(cpu) {
				c.accumulate(iv, origin, out)
			}
		}(cpu, sums[ci])
	}
	wg.Wait()

	result := &LoadResult{
		Spec:            c.spec,
		TotalDurationNs: totalDuration,
		Aggregate:       make(LoadTable, 0, c.spec.Count),
		PerCore:         make(LoadTable, 0, c.spec.Count*len(cpus)),
	}

	numCPUs := int64(len(cpus))
	for i := 0; i < c.spec.Count; i++ {
		startMs := float64(c.spec.StartNs(i)) / 1e6
		valid := c.spec.Valid(i, totalDuration)

		var sumAll int64
		for ci, cpu := range cpus {
			sumAll += sums[ci][i]
			result.PerCore = append(result.PerCore, LoadSample{
				WindowStartMs: startMs,
				CPU:           cpu,
				LoadPct:       loadPct(sums[ci][i], c.spec.SizeNs),
				Valid:         valid,
			})
		}
		result.Aggregate = append(result.Aggregate, LoadSample{
			WindowStartMs: startMs,
			CPU:           AggregateCPU,
			LoadPct:       loadPct(sumAll, numCPUs*c.spec.SizeNs),
			Valid:         valid,
		})

		c.notifyWindowCompleted(i)
	}

	return result, nil
}

// accumulate adds the overlap of one interval to the per-window sums of its
// CPU. Only the windows actually touched by the interval are visited.
func (c *LoadCalculator) accumulate(iv Interval, origin int64, out []int64) {
	start := iv.StartNs - origin
	end := iv.EndNs - origin
	if end <= start {
		return
	}

	// First window whose end lies past the interval start.
	var first int64
	if start >= c.spec.SizeNs {
		first = ceilDiv(start-c.spec.SizeNs+1, c.spec.StepNs)
	}
	// Last window whose start lies before the interval end.
	last := (end - 1) / c.spec.StepNs
	if last > int64(c.spec.Count-1) {
		last = int64(c.spec.Count - 1)
	}

	shifted := Interval{StartNs: start, EndNs: end, CPU: iv.CPU}
	for w := first; w <= last; w++ {
		windowStart := w * c.spec.StepNs
		out[w] += OverlapNs(shifted, windowStart, windowStart+c.spec.SizeNs)
	}
}

func (c *LoadCalculator) notifyWindowCompleted(i int) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"window": i,
				"panic":  r,
			}).Warn("Progress observer panicked.")
		}
	}()
	c.observer.WindowCompleted(i, c.spec.Count)
}

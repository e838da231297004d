package traceload

// AggregateCPU is the CPU value of LoadSamples belonging to the aggregate
// grouping across all CPUs.
const AggregateCPU = -1

// LoadSample is the load percentage of one window for one grouping.
type LoadSample struct {
	// WindowStartMs is the window start relative to the trace origin.
	WindowStartMs float64
	// CPU is the CPU id of the grouping, or AggregateCPU.
	CPU int
	// LoadPct is the load percentage, always within [0, 100].
	LoadPct float64
	// Valid reports whether the window lies fully within the covered trace
	// duration. Samples of trailing windows are computed over partially
	// sampled data.
	Valid bool
}

// LoadTable is an ordered sequence of LoadSamples, ordered by window index
// and, within a window, by CPU id. It is produced once per run and read-only
// thereafter.
type LoadTable []LoadSample

// WindowLoadPct computes the load percentage of a single half-open window
// over a single grouping. The window bounds are in the same timebase as the
// stored intervals. A cpu of AggregateCPU sums overlaps across all CPUs and
// normalizes by the full available CPU time, any other value restricts the
// sum to intervals on that CPU.
//
// This is the reference form of the aggregation, it evaluates every
// candidate interval against the window. LoadCalculator uses an
// interval-major accumulation instead, which is numerically identical.
func WindowLoadPct(store *IntervalStore, windowStartNs, windowEndNs int64, cpu int) float64 {
	intervals := store.intervals
	groups := int64(store.NumCPUs())
	if cpu != AggregateCPU {
		intervals = store.IntervalsOnCPU(cpu)
		groups = 1
	}

	var sum int64
	for _, iv := range intervals {
		sum += OverlapNs(iv, windowStartNs, windowEndNs)
	}

	return loadPct(sum, groups*(windowEndNs-windowStartNs))
}

// loadPct normalizes a summed overlap into a percentage of the available
// CPU time, clamped to [0, 100]. A window with no overlapping intervals
// yields 0.
func loadPct(sumOverlapNs, availableNs int64) float64 {
	if availableNs <= 0 {
		return 0
	}
	pct := 100 * float64(sumOverlapNs) / float64(availableNs)
	if pct > 100 {
		pct = 100
	}
	return pct
}

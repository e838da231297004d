package traceload

// OverlapNs returns the duration of the intersection between the interval
// and the half-open window [windowStartNs, windowEndNs). Intervals lying
// entirely outside the window, including ones merely touching a boundary,
// yield zero.
func OverlapNs(iv Interval, windowStartNs, windowEndNs int64) int64 {
	start := iv.StartNs
	if windowStartNs > start {
		start = windowStartNs
	}
	end := iv.EndNs
	if windowEndNs < end {
		end = windowEndNs
	}
	if end <= start {
		return 0
	}
	return end - start
}

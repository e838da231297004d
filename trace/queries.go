package trace

import (
	_ "embed"
)

// ThreadRunningSlicesQuery selects every per-CPU running interval of the
// trace as (ts_ns, ts_end_ns, ucpu), with timestamps relative to the trace
// start.
//
//go:embed queries/thread_running_slices.sql
var ThreadRunningSlicesQuery string

// LogcatQuery selects all logcat entries of the trace as
// (ts, prio, tag, msg).
//
//go:embed queries/logcat.sql
var LogcatQuery string

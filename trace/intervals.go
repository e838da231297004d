package trace

import (
	"strconv"

	"github.com/targodan/go-errors"

	"github.com/tracelab/traceload"
)

// Required columns of a running-intervals query result.
const (
	ColumnTsNs    = "ts_ns"
	ColumnTsEndNs = "ts_end_ns"
	ColumnUCPU    = "ucpu"
)

// Intervals decodes a running-intervals query result into interval records.
// It fails with traceload.ErrInvalidInput if a required column is absent,
// the result set is empty, or a value does not parse.
func Intervals(result *Result) ([]traceload.Interval, error) {
	tsIdx, ok := result.ColumnIndex(ColumnTsNs)
	if !ok {
		return nil, errors.Errorf("%w: query result is missing column %q", traceload.ErrInvalidInput, ColumnTsNs)
	}
	endIdx, ok := result.ColumnIndex(ColumnTsEndNs)
	if !ok {
		return nil, errors.Errorf("%w: query result is missing column %q", traceload.ErrInvalidInput, ColumnTsEndNs)
	}
	cpuIdx, ok := result.ColumnIndex(ColumnUCPU)
	if !ok {
		return nil, errors.Errorf("%w: query result is missing column %q", traceload.ErrInvalidInput, ColumnUCPU)
	}
	if result.Len() == 0 {
		return nil, errors.Errorf("%w: query returned no rows", traceload.ErrInvalidInput)
	}

	intervals := make([]traceload.Interval, result.Len())
	for i, row := range result.Rows {
		start, err := strconv.ParseInt(row[tsIdx], 10, 64)
		if err != nil {
			return nil, errors.Errorf("%w: row %d has malformed %s %q", traceload.ErrInvalidInput, i, ColumnTsNs, row[tsIdx])
		}
		end, err := strconv.ParseInt(row[endIdx], 10, 64)
		if err != nil {
			return nil, errors.Errorf("%w: row %d has malformed %s %q", traceload.ErrInvalidInput, i, ColumnTsEndNs, row[endIdx])
		}
		cpu, err := strconv.Atoi(row[cpuIdx])
		if err != nil {
			return nil, errors.Errorf("%w: row %d has malformed %s %q", traceload.ErrInvalidInput, i, ColumnUCPU, row[cpuIdx])
		}

		intervals[i] = traceload.Interval{StartNs: start, EndNs: end, CPU: cpu}
	}

	return intervals, nil
}

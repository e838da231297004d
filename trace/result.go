// Package trace implements the trace data provider: it runs SQL queries
// against a trace file by invoking an external trace processor binary and
// decodes the tabular results into fixed-schema records.
package trace

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Result is the raw tabular outcome of one query. All values are strings as
// emitted by the trace processor, decoding into typed records is the job of
// the per-query converters.
type Result struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// ColumnIndex returns the index of the named column.
func (r *Result) ColumnIndex(name string) (int, bool) {
	for i, col := range r.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// ParseCSV reads a CSV stream with a header line into a Result.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV output, %w", err)
	}
	if len(records) == 0 {
		return &Result{}, nil
	}

	return &Result{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// ProviderError wraps any failure of the trace data provider. Provider
// failures abort the run and are never retried.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("trace data provider could not %s, reason: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

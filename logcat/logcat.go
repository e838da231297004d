// Package logcat extracts android logcat entries from a trace and renders
// them in the classic logcat text format.
package logcat

import (
	"fmt"
	"io"
	"strconv"

	"github.com/targodan/go-errors"

	"github.com/tracelab/traceload"
	"github.com/tracelab/traceload/trace"
)

// Priority is an android log priority code as recorded in the trace.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityDefault
	PriorityVerbose
	PriorityDebug
	PriorityInfo
	PriorityWarn
	PriorityError
	PriorityFatal
	PrioritySilent
)

type priorityDescriptor struct {
	Letter string
	Name   string
}

// Static priority table, built once and never mutated.
var priorityTable = map[Priority]priorityDescriptor{
	PriorityUnknown: {"N", "ANDROID_LOG_UNKNOWN"},
	PriorityDefault: {"T", "ANDROID_LOG_DEFAULT"},
	PriorityVerbose: {"V", "ANDROID_LOG_VERBOSE"},
	PriorityDebug:   {"D", "ANDROID_LOG_DEBUG"},
	PriorityInfo:    {"I", "ANDROID_LOG_INFO"},
	PriorityWarn:    {"W", "ANDROID_LOG_WARN"},
	PriorityError:   {"E", "ANDROID_LOG_ERROR"},
	PriorityFatal:   {"F", "ANDROID_LOG_FATAL"},
	PrioritySilent:  {"S", "ANDROID_LOG_SILENT"},
}

// Letter returns the single-letter code of the priority, "?" for codes
// outside the table.
func (p Priority) Letter() string {
	if d, ok := priorityTable[p]; ok {
		return d.Letter
	}
	return "?"
}

// Name returns the symbolic name of the priority.
func (p Priority) Name() string {
	if d, ok := priorityTable[p]; ok {
		return d.Name
	}
	return "ANDROID_LOG_INVALID"
}

// Entry is a single logcat record.
type Entry struct {
	Ts   int64
	Prio Priority
	Tag  string
	Msg  string
}

// Required columns of a logcat query result.
const (
	ColumnTs   = "ts"
	ColumnPrio = "prio"
	ColumnTag  = "tag"
	ColumnMsg  = "msg"
)

// Entries decodes a logcat query result into entry records. An empty result
// is not an error here, a trace without logcat simply yields no entries.
func Entries(result *trace.Result) ([]Entry, error) {
	indices := make([]int, 4)
	for i, name := range []string{ColumnTs, ColumnPrio, ColumnTag, ColumnMsg} {
		idx, ok := result.ColumnIndex(name)
		if !ok {
			return nil, errors.Errorf("%w: logcat result is missing column %q", traceload.ErrInvalidInput, name)
		}
		indices[i] = idx
	}

	entries := make([]Entry, result.Len())
	for i, row := range result.Rows {
		ts, err := strconv.ParseInt(row[indices[0]], 10, 64)
		if err != nil {
			return nil, errors.Errorf("%w: row %d has malformed ts %q", traceload.ErrInvalidInput, i, row[indices[0]])
		}
		prio, err := strconv.Atoi(row[indices[1]])
		if err != nil {
			return nil, errors.Errorf("%w: row %d has malformed prio %q", traceload.ErrInvalidInput, i, row[indices[1]])
		}

		entries[i] = Entry{
			Ts:   ts,
			Prio: Priority(prio),
			Tag:  row[indices[2]],
			Msg:  row[indices[3]],
		}
	}

	return entries, nil
}

// Write renders the entries in logcat text form, one line per entry.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		_, err := fmt.Fprintf(w, "%d %s/%s: %s\n", e.Ts, e.Prio.Letter(), e.Tag, e.Msg)
		if err != nil {
			return err
		}
	}
	return nil
}

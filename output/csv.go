// Package output renders load tables for external consumers: CSV export,
// console previews and live progress reporting. The core itself never
// performs any file or display I/O.
package output

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/gzip"
	"github.com/rjNemo/underscore"
	"github.com/targodan/go-errors"

	"github.com/tracelab/traceload"
)

var aggregateHeader = []string{"window_start_ms", "load_pct", "valid"}
var perCoreHeader = []string{"window_start_ms", "ucpu", "load_pct"}

// WriteAggregateCSV writes the aggregate load table as CSV.
func WriteAggregateCSV(w io.Writer, table traceload.LoadTable) error {
	records := underscore.Map([]traceload.LoadSample(table), func(s traceload.LoadSample) []string {
		return []string{
			formatFloat(s.WindowStartMs),
			formatFloat(s.LoadPct),
			strconv.FormatBool(s.Valid),
		}
	})
	return writeCSV(w, aggregateHeader, records)
}

// WritePerCoreCSV writes the per-core load table as CSV.
func WritePerCoreCSV(w io.Writer, table traceload.LoadTable) error {
	records := underscore.Map([]traceload.LoadSample(table), func(s traceload.LoadSample) []string {
		return []string{
			formatFloat(s.WindowStartMs),
			strconv.Itoa(s.CPU),
			formatFloat(s.LoadPct),
		}
	})
	return writeCSV(w, perCoreHeader, records)
}

// SaveTables writes both tables of a result next to the given path prefix,
// creating the directory if needed, and returns the written paths. With
// compress set the files are gzipped and suffixed ".gz".
func SaveTables(prefix string, result *traceload.LoadResult, compress bool) ([]string, error) {
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Errorf("could not create output directory, reason: %w", err)
		}
	}

	overallPath, err := saveTable(prefix+"_overall.csv", compress, func(w io.Writer) error {
		return WriteAggregateCSV(w, result.Aggregate)
	})
	if err != nil {
		return nil, err
	}

	perCorePath, err := saveTable(prefix+"_per_core.csv", compress, func(w io.Writer) error {
		return WritePerCoreCSV(w, result.PerCore)
	})
	if err != nil {
		return nil, err
	}

	return []string{overallPath, perCorePath}, nil
}

func saveTable(path string, compress bool, write func(io.Writer) error) (string, error) {
	if compress {
		path += ".gz"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Errorf("could not create %q, reason: %w", path, err)
	}

	w := io.Writer(f)
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		w = gz
	}

	err = write(w)
	if gz != nil {
		if closeErr := gz.Close(); err == nil {
			err = closeErr
		}
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", errors.Errorf("could not write %q, reason: %w", path, err)
	}

	return path, nil
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

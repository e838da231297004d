package trace

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
)

// Provider is the data source of a load computation. The core only ever
// consumes query results, it performs no trace I/O of its own.
type Provider interface {
	Query(query string) (*Result, error)
}

// Config describes how to reach the external trace processor.
type Config struct {
	// BinaryPath is the path of the trace processor binary.
	BinaryPath string
	// TracePath is the path of the trace file to load.
	TracePath string
	// ExtraArgs are additional arguments passed to the binary before the
	// trace path.
	ExtraArgs []string
}

// Processor executes queries by running the trace processor binary in batch
// mode and parsing its CSV output.
type Processor struct {
	cfg Config
}

// NewProcessor validates that both the binary and the trace file exist and
// returns a Processor.
func NewProcessor(cfg Config) (*Processor, error) {
	if _, err := os.Stat(cfg.BinaryPath); err != nil {
		return nil, &ProviderError{Op: "find the trace processor binary", Err: err}
	}
	if _, err := os.Stat(cfg.TracePath); err != nil {
		return nil, &ProviderError{Op: "find the trace file", Err: err}
	}
	return &Processor{cfg: cfg}, nil
}

// Query runs the given SQL against the trace. The query is handed to the
// binary via a temporary file, batch mode output is parsed as CSV.
func (p *Processor) Query(query string) (*Result, error) {
	queryFile, err := os.CreateTemp("", "traceload-query-*.sql")
	if err != nil {
		return nil, &ProviderError{Op: "create the query file", Err: err}
	}
	defer os.Remove(queryFile.Name())

	_, err = queryFile.WriteString(query)
	if closeErr := queryFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, &ProviderError{Op: "write the query file", Err: err}
	}

	args := QueryArgs(queryFile.Name(), p.cfg.TracePath, p.cfg.ExtraArgs)

	logrus.WithFields(logrus.Fields{
		"binary": p.cfg.BinaryPath,
		"args":   args,
	}).Debug("Running trace processor query.")

	cmd := exec.Command(p.cfg.BinaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ProviderError{
			Op:  "execute the query",
			Err: errors.Errorf("%w, stderr: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	result, err := ParseCSV(&stdout)
	if err != nil {
		return nil, &ProviderError{Op: "parse the query output", Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"columns": result.Columns,
		"rows":    result.Len(),
	}).Debug("Query complete.")

	return result, nil
}

// QueryArgs builds the argument list for one batch-mode invocation.
func QueryArgs(queryPath, tracePath string, extra []string) []string {
	args := []string{"-q", queryPath}
	args = append(args, extra...)
	return append(args, tracePath)
}

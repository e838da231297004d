package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/tracelab/traceload"
)

// ConsoleProgress implements traceload.ProgressObserver with a rewriting
// console line. It is intended for live updates to a terminal.
type ConsoleProgress struct {
	out         io.Writer
	label       string
	lastPercent int
}

// NewConsoleProgress creates a ConsoleProgress writing to out, prefixing
// every update with the given label.
func NewConsoleProgress(out io.Writer, label string) *ConsoleProgress {
	return &ConsoleProgress{out: out, label: label, lastPercent: -1}
}

// WindowCompleted rewrites the progress line. Repeated updates within the
// same percent are suppressed.
func (p *ConsoleProgress) WindowCompleted(index, total int) {
	percent := int(float64(index+1)/float64(total)*100. + 0.5)
	if percent == p.lastPercent {
		return
	}
	p.lastPercent = percent

	fmt.Fprintf(p.out, "\r%-64s", fmt.Sprintf("%s: %3d %%", p.label, percent))
}

// Finish terminates the progress line.
func (p *ConsoleProgress) Finish() {
	fmt.Fprintln(p.out)
}

// PrintPreview writes a colored heading and the first rows of a load table.
// A limit of 0 or less prints the whole table.
func PrintPreview(w io.Writer, label string, table traceload.LoadTable, limit int) {
	fmt.Fprintf(w, "\n%s\n", color.CyanString("%s (%d samples):", label, len(table)))

	n := len(table)
	if limit > 0 && limit < n {
		n = limit
	}
	for _, sample := range table[:n] {
		cpu := "all"
		if sample.CPU != traceload.AggregateCPU {
			cpu = strconv.Itoa(sample.CPU)
		}
		line := fmt.Sprintf("  %12.3f ms  cpu %-3s  %6.2f %%", sample.WindowStartMs, cpu, sample.LoadPct)
		if !sample.Valid {
			line += "  (partial)"
		}
		fmt.Fprintln(w, line)
	}
	if n < len(table) {
		fmt.Fprintf(w, "  ... %d more\n", len(table)-n)
	}
}

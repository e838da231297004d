package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/shlex"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/tracelab/traceload"
	"github.com/tracelab/traceload/output"
	"github.com/tracelab/traceload/trace"
)

type cpuLoadParams struct {
	windowSizeMs int64
	windowStepMs int64
	points       int
	outputPrefix string
	compress     bool
	previewRows  int
}

func cpuLoad(c *cli.Context) error {
	err := initAppAction(c)
	if err != nil {
		return err
	}

	extraArgs, err := shlex.Split(c.String("processor-args"))
	if err != nil {
		return errors.Errorf("invalid flag \"--processor-args\", reason: %w", err)
	}

	processor, err := trace.NewProcessor(trace.Config{
		BinaryPath: c.String("binary"),
		TracePath:  c.String("file"),
		ExtraArgs:  extraArgs,
	})
	if err != nil {
		return err
	}

	return runCPULoad(processor, cpuLoadParams{
		windowSizeMs: c.Int64("window-size-ms"),
		windowStepMs: c.Int64("window-step-ms"),
		points:       c.Int("points"),
		outputPrefix: c.String("output"),
		compress:     c.Bool("compress"),
		previewRows:  c.Int("preview"),
	}, os.Stdout)
}

func runCPULoad(provider trace.Provider, params cpuLoadParams, out io.Writer) error {
	fmt.Fprintln(out, "Loading trace...")
	result, err := provider.Query(trace.ThreadRunningSlicesQuery)
	if err != nil {
		return err
	}

	intervals, err := trace.Intervals(result)
	if err != nil {
		return err
	}
	store, err := traceload.NewIntervalStore(intervals)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Queried %s running intervals, covering %.2f ms of trace time.\n",
		humanize.Comma(int64(store.Len())), float64(store.TotalDurationNs())/1e6)
	fmt.Fprintf(out, "CPUs: %s\n",
		traceload.Join(traceload.FormatSlice("%d", store.CPUs()), ", ", " and "))

	var spec traceload.WindowSpec
	if params.windowSizeMs > 0 && params.windowStepMs > 0 {
		spec, err = traceload.PlanWindows(
			store.TotalDurationNs(), params.windowSizeMs*1_000_000, params.windowStepMs*1_000_000)
	} else {
		points := params.points
		if points <= 0 {
			points = traceload.DefaultDesiredPoints
		}
		spec, err = traceload.PlanWindowsAuto(store.TotalDurationNs(), points)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Window size: %.2f ms\n", float64(spec.SizeNs)/1e6)
	fmt.Fprintf(out, "Window step: %.2f ms\n", float64(spec.StepNs)/1e6)
	fmt.Fprintf(out, "Windows:     %d\n", spec.Count)

	calculator := traceload.NewLoadCalculator(store, spec)
	progress := output.NewConsoleProgress(out, "Computing CPU load")
	calculator.SetObserver(progress)

	loadResult, err := calculator.Compute()
	progress.Finish()
	if err != nil {
		return err
	}

	output.PrintPreview(out, "Overall CPU load", loadResult.Aggregate, params.previewRows)
	output.PrintPreview(out, "Per-CPU load", loadResult.PerCore, params.previewRows)

	if params.outputPrefix != "" {
		paths, err := output.SaveTables(params.outputPrefix, loadResult, params.compress)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(out, "Saved %s\n", path)
		}
	}

	return nil
}

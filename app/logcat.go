package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/shlex"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/tracelab/traceload/logcat"
	"github.com/tracelab/traceload/trace"
)

func extractLogcat(c *cli.Context) error {
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

	outfile, err := os.Create(c.String("output"))
	if err != nil {
		return errors.Errorf("could not create output file, reason: %w", err)
	}
	defer outfile.Close()

	return runExtractLogcat(processor, outfile, c.String("output"), os.Stdout)
}

func runExtractLogcat(provider trace.Provider, outfile io.Writer, outPath string, out io.Writer) error {
	result, err := provider.Query(trace.LogcatQuery)
	if err != nil {
		return err
	}

	entries, err := logcat.Entries(result)
	if err != nil {
		return err
	}

	err = logcat.Write(outfile, entries)
	if err != nil {
		return errors.Errorf("could not write logcat, reason: %w", err)
	}

	fmt.Fprintf(out, "Extracted %s logcat entries to %s\n",
		humanize.Comma(int64(len(entries))), outPath)
	return nil
}

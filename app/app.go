// Package app wires the traceload commands into a CLI application.
package app

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/targodan/go-errors"
	"github.com/urfave/cli/v2"

	"github.com/tracelab/traceload/version"
)

var onExit func()

func initAppAction(c *cli.Context) error {
	lvl, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	switch c.String("log-path") {
	case "-":
		logrus.SetOutput(os.Stdout)
	case "--":
		logrus.SetOutput(os.Stderr)
	default:
		logfile, err := os.OpenFile(c.String("log-path"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return errors.Errorf("could not open logfile for writing, reason: %w", err)
		}
		logrus.SetOutput(logfile)
		logrus.StandardLogger().ExitFunc = func(code int) {
			if onExit != nil {
				onExit()
			}
			os.Exit(code)
		}
		onExit = func() {
			logfile.Close()
		}
	}
	logrus.WithField("arguments", os.Args).Debug("Program started.")
	return nil
}

func RunApp(args []string) {
	processorFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "path to the trace file",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "binary",
			Aliases:  []string{"b"},
			Usage:    "path to the trace processor binary",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "processor-args",
			Usage: "additional arguments passed to the trace processor binary",
		},
	}

	app := &cli.App{
		Name:                 "traceload",
		HelpName:             "traceload",
		Description:          "Computes CPU load curves from the running intervals of a trace, with some extras.",
		Version:              version.TraceloadVersion.String(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "one of [trace, debug, info, warn, error, fatal, panic]",
				Value:   "panic",
			},
			&cli.StringFlag{
				Name:  "log-path",
				Usage: "path to the logfile, or \"-\" for stdout, or \"--\" for stderr",
				Value: "--",
			},
		},
		Commands: []*cli.Command{
			&cli.Command{
				Name:    "cpu-load",
				Aliases: []string{"load"},
				Usage:   "computes aggregate and per-CPU load curves over sliding windows",
				Action:  cpuLoad,
				Flags: append([]cli.Flag{
					&cli.Int64Flag{
						Name:  "window-size-ms",
						Usage: "window size in milliseconds, derived from --points unless both --window-size-ms and --window-step-ms are given",
					},
					&cli.Int64Flag{
						Name:  "window-step-ms",
						Usage: "window step in milliseconds, derived from --points unless both --window-size-ms and --window-step-ms are given",
					},
					&cli.IntFlag{
						Name:  "points",
						Usage: "desired number of output points when deriving window parameters",
						Value: 200,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "path prefix for the CSV output files, no files are written without it",
					},
					&cli.BoolFlag{
						Name:  "compress",
						Usage: "gzip the CSV output files",
						Value: false,
					},
					&cli.IntFlag{
						Name:  "preview",
						Usage: "number of samples shown per table, 0 shows everything",
						Value: 10,
					},
				}, processorFlags...),
			},
			&cli.Command{
				Name:    "extract-logcat",
				Aliases: []string{"logcat"},
				Usage:   "extracts the logcat entries of a trace into a text file",
				Action:  extractLogcat,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "path of the output file",
						Required: true,
					},
				}, processorFlags...),
			},
		},
	}

	err := app.Run(args)
	if err != nil {
		fmt.Println(err)
		logrus.Error(err)
		logrus.Fatal("Aborting.")
	}
	if onExit != nil {
		onExit()
	}
}

//nolint:wrapcheck
package main

import (
	"context"
	"errors"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/haplo"
	"github.com/farcloser/haplo/internal/output"
)

var errClassifyArgs = errors.New("expected at least one file path")

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Decide whether two-channel assets carry dual mono or true stereo",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			// Classifier thresholds.
			&cli.IntFlag{
				Name:  "silence-threshold",
				Usage: "Samples below this level in dBFS do not count toward the analysis window",
				Value: -60,
			},
			&cli.IntFlag{
				Name:  "diff-threshold",
				Usage: "Side signal RMS below this level in dBFS classifies as dual mono",
				Value: -60,
			},
			&cli.IntFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Analysis window in seconds, counted from the first non-silent frame",
				Value:   10,
			},

			// Output format.
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errClassifyArgs
			}

			opts := classifierOptions(cmd)

			entries := make([]*format.Data, 0, cmd.NArg())
			failed := 0

			for _, filePath := range cmd.Args().Slice() {
				report, err := haplo.ClassifyFile(filePath, opts)
				if err != nil {
					failed++

					entries = append(entries, errorEntry(filePath, err))

					continue
				}

				entries = append(entries, &format.Data{
					Object: filePath,
					Meta:   output.ReportToMap(report),
				})
			}

			if err := printEntries(entries, cmd.String("format")); err != nil {
				return err
			}

			return failedError(failed)
		},
	}
}

// classifierOptions maps the shared threshold flags onto pipeline options.
func classifierOptions(cmd *cli.Command) haplo.Options {
	opts := haplo.DefaultOptions()
	opts.SilenceThresholdDb = float64(cmd.Int("silence-threshold"))
	opts.DiffThresholdDb = float64(cmd.Int("diff-threshold"))
	opts.WindowSec = cmd.Int("window")

	return opts
}

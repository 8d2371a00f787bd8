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

var errProbeArgs = errors.New("expected at least one file path")

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Print the container header of audio assets",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errProbeArgs
			}

			entries := make([]*format.Data, 0, cmd.NArg())
			failed := 0

			for _, filePath := range cmd.Args().Slice() {
				spec, err := haplo.Probe(filePath)
				if err != nil {
					failed++

					entries = append(entries, errorEntry(filePath, err))

					continue
				}

				entries = append(entries, &format.Data{
					Object: filePath,
					Meta:   output.SpecToMap(spec),
				})
			}

			if err := printEntries(entries, cmd.String("format")); err != nil {
				return err
			}

			return failedError(failed)
		},
	}
}

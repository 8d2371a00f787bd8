//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/haplo"
	"github.com/farcloser/haplo/internal/output"
)

var errProcessArgs = errors.New("expected at least one file path")

// Routing directories, created next to each processed asset.
const (
	monoDir         = "mono"
	stereoDir       = "stereo"
	multichannelDir = "multichannel"
)

func processCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Reduce dual-mono assets to one channel and sort everything into routing directories",
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
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"D"},
				Usage:   "Include the full classification report in output",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return errProcessArgs
			}

			opts := classifierOptions(cmd)

			entries := make([]*format.Data, 0, cmd.NArg())
			failed := 0

			// One asset at a time. A failing asset is reported and never
			// stops the rest of the queue.
			for _, filePath := range cmd.Args().Slice() {
				meta, err := processOne(filePath, opts, cmd.Bool("debug"))
				if err != nil {
					failed++

					entries = append(entries, errorEntry(filePath, err))

					continue
				}

				entries = append(entries, &format.Data{
					Object: filePath,
					Meta:   meta,
				})
			}

			if err := printEntries(entries, cmd.String("format")); err != nil {
				return err
			}

			return failedError(failed)
		},
	}
}

// processOne runs the pipeline on one asset and settles the file where it
// belongs. A reduced copy supersedes the original; pass-through assets move
// into the routing directory matching their channel layout.
func processOne(filePath string, opts haplo.Options, debug bool) (map[string]any, error) {
	result, err := haplo.Process(filePath, routePath(filePath, monoDir), opts)
	if err != nil {
		return nil, err
	}

	target := result.OutputPath

	if result.Replaced {
		if err := os.Remove(filePath); err != nil {
			return nil, fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
		}
	} else {
		target = routePath(filePath, actionDir(result.Action))

		if err := moveFile(filePath, target); err != nil {
			return nil, err
		}
	}

	var meta map[string]any
	if debug {
		meta = output.ResultToMap(result)
	} else {
		meta = map[string]any{
			"action":  result.Action.String(),
			"summary": result.Message,
		}
	}

	meta["routed_to"] = target

	return meta, nil
}

// actionDir maps a pipeline action onto its routing directory.
func actionDir(action haplo.Action) string {
	switch action {
	case haplo.ActionKeptStereo:
		return stereoDir
	case haplo.ActionKeptMultichannel:
		return multichannelDir
	case haplo.ActionKeptMono, haplo.ActionReduced:
		return monoDir
	}

	return monoDir
}

func routePath(filePath, subdir string) string {
	return filepath.Join(filepath.Dir(filePath), subdir, filepath.Base(filePath))
}

// moveFile copies then removes, so routing holds across filesystem
// boundaries.
func moveFile(src, dst string) error {
	slog.Debug("routing asset", "source", src, "destination", dst)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // CLI tool routes user-specified files
	if err != nil {
		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	defer func() {
		_ = in.Close()
	}()

	out, err := os.Create(dst) //nolint:gosec // CLI tool routes user-specified files
	if err != nil {
		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)

		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(dst)

		return fmt.Errorf("%w: %w", haplo.ErrPathFailure, err)
	}

	return nil
}

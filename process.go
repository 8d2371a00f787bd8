//nolint:wrapcheck
package haplo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/farcloser/haplo/internal/reduce"
	"github.com/farcloser/haplo/internal/types"
)

// Process runs the full pipeline on one asset: probe the header, then
// dispatch on the channel count. Two-channel assets get classified; a
// dual-mono asset is reduced into reducedPath and reported superseded,
// everything else is left byte-for-byte untouched. Classification and
// reduction are two separate stream acquisitions over the same asset.
//
// Process is synchronous and shares no state between calls. Callers own
// concurrency, and calls on the same asset must be serialized.
func Process(inputPath, reducedPath string, opts Options) (*Result, error) {
	if err := checkPath(inputPath); err != nil {
		return nil, err
	}

	if err := checkPath(reducedPath); err != nil {
		return nil, err
	}

	slog.Debug("haplo.Process", "file path", inputPath)

	spec, err := registry.Probe(inputPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Path: inputPath,
		Spec: spec,
	}

	switch spec.Channels {
	case 1:
		result.Action = ActionKeptMono
		result.Message = "already mono"

		return result, nil
	case 2: //nolint:mnd // classified below
	default:
		result.Action = ActionKeptMultichannel
		result.Message = fmt.Sprintf("%d channels, not analyzed", spec.Channels)

		return result, nil
	}

	report, err := ClassifyFile(inputPath, opts)
	if err != nil {
		return nil, err
	}

	result.Report = report

	if report.Verdict == types.VerdictTrueStereo {
		result.Action = ActionKeptStereo
		result.Message = fmt.Sprintf("true stereo (side %.1f dBFS)", report.SideRmsDb)

		return result, nil
	}

	if err := reduceFile(inputPath, reducedPath, spec); err != nil {
		return nil, err
	}

	result.Action = ActionReduced
	result.Replaced = true
	result.OutputPath = reducedPath
	result.Message = fmt.Sprintf("dual mono (side %.1f dBFS), reduced to one channel", report.SideRmsDb)

	return result, nil
}

// reduceFile is the second pass: a fresh stream, copied down to channel 0.
// Nothing of the output survives a failure.
func reduceFile(inputPath, outputPath string, spec types.AudioSpec) error {
	slog.Debug("haplo.reduce", "source", inputPath, "destination", outputPath)

	stream, err := registry.Open(inputPath)
	if err != nil {
		return err
	}

	defer func() {
		_ = stream.Close()
	}()

	writer, err := registry.Create(outputPath, spec.Mono())
	if err != nil {
		return err
	}

	if _, err := reduce.Extract(stream, writer, spec.Channels); err != nil {
		_ = writer.Close()
		_ = os.Remove(outputPath)

		return mapExtractError(err)
	}

	if err := writer.Close(); err != nil {
		_ = os.Remove(outputPath)

		return err
	}

	return nil
}

// mapExtractError keeps write-side failures as they are and flags anything
// else as the source having fallen apart mid-copy.
func mapExtractError(err error) error {
	if errors.Is(err, types.ErrWriteFailure) {
		return err
	}

	return fmt.Errorf("%w: %w", types.ErrUnreadableContainer, err)
}

// checkPath rejects paths with no usable file name before any I/O happens.
func checkPath(path string) error {
	switch filepath.Base(path) {
	case ".", "..", string(filepath.Separator):
		return fmt.Errorf("%w: %q has no file name", types.ErrPathFailure, path)
	}

	return nil
}

//nolint:wrapcheck
package haplo

import (
	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/container/aiff"
	"github.com/farcloser/haplo/internal/container/wav"
	"github.com/farcloser/haplo/internal/types"
)

/*
Usage:

	// One asset, full pipeline: probe, classify when two channels, reduce
	// when dual mono.
	result, err := haplo.Process("take.wav", "mono/take.wav", haplo.DefaultOptions())
	if result.Replaced {
		fmt.Println(result.Message)
	}

	// Verdict only, nothing written.
	report, err := haplo.ClassifyFile("take.wav", haplo.DefaultOptions())
	fmt.Printf("%s (side %.1f dBFS)\n", report.Verdict, report.SideRmsDb)

	// Custom thresholds.
	opts := haplo.DefaultOptions()
	opts.DiffThresholdDb = -72
	opts.WindowSec = 30
	report, err = haplo.ClassifyFile("take.wav", opts)

	// Header inspection.
	spec, err := haplo.Probe("take.wav")
*/

// Options configures classification.
type Options struct {
	// SilenceThresholdDb is the level below which a frame counts as silent
	// pre-roll on both channels (default: -60 dBFS).
	SilenceThresholdDb float64

	// DiffThresholdDb is the side-signal RMS below which the channels count
	// as identical (default: -60 dBFS).
	DiffThresholdDb float64

	// WindowSec caps the analysis window, counted from the first non-silent
	// frame (default: 10 seconds).
	WindowSec int
}

// DefaultOptions returns the thresholds the classifier was tuned with.
func DefaultOptions() Options {
	return Options{
		SilenceThresholdDb: -60.0,
		DiffThresholdDb:    -60.0,
		WindowSec:          10,
	}
}

// Action states what the pipeline did with an asset.
type Action int

const (
	ActionKeptMono         Action = iota // single channel already, passed through
	ActionReduced                        // dual mono, rewritten to one channel
	ActionKeptStereo                     // true stereo, passed through
	ActionKeptMultichannel               // three or more channels, passed through unanalyzed
)

func (a Action) String() string {
	switch a {
	case ActionKeptMono:
		return "kept-mono"
	case ActionReduced:
		return "reduced"
	case ActionKeptStereo:
		return "kept-stereo"
	case ActionKeptMultichannel:
		return "kept-multichannel"
	}

	return "unknown"
}

// Result is the outcome for one asset.
type Result struct {
	Path       string
	Spec       types.AudioSpec
	Action     Action
	Replaced   bool                // the original is superseded by OutputPath
	OutputPath string              // set when Replaced
	Message    string              // human-readable outcome
	Report     *types.StereoReport // set when classification ran
}

// Error kinds. Every failure returned by this package wraps one of these,
// so callers can sort outcomes with errors.Is.
var (
	ErrUnreadableContainer = types.ErrUnreadableContainer
	ErrUnsupportedEncoding = types.ErrUnsupportedEncoding
	ErrWriteFailure        = types.ErrWriteFailure
	ErrPathFailure         = types.ErrPathFailure
)

// registry carries the built-in codecs. Immutable after construction and
// safe for concurrent use.
//
//nolint:gochecknoglobals // codec table, effectively const
var registry = container.NewRegistry(wav.Codec{}, aiff.Codec{})

// Probe decodes just the container header of the asset at path.
func Probe(path string) (types.AudioSpec, error) {
	return registry.Probe(path)
}

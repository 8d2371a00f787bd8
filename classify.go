//nolint:wrapcheck
package haplo

import (
	"github.com/farcloser/haplo/internal/audit/stereo"
	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/types"
)

// StreamFactory provides fresh sample streams for multiple passes over the
// same asset.
type StreamFactory func() (container.Stream, error)

// Classify runs the dual-mono decision over one fresh stream and returns
// the verdict with the measurements behind it. Nothing is written.
func Classify(factory StreamFactory, opts Options) (*types.StereoReport, error) {
	stream, err := factory()
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = stream.Close()
	}()

	return stereo.Classify(stream, stream.Spec(), opts.stereo())
}

// ClassifyFile runs the dual-mono decision over the asset at path.
func ClassifyFile(path string, opts Options) (*types.StereoReport, error) {
	return Classify(func() (container.Stream, error) {
		return registry.Open(path)
	}, opts)
}

func (o Options) stereo() stereo.Options {
	return stereo.Options{
		SilenceThresholdDb: o.SilenceThresholdDb,
		DiffThresholdDb:    o.DiffThresholdDb,
		WindowSec:          o.WindowSec,
	}
}

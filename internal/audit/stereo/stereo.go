// Package stereo decides whether a two-channel asset is dual mono (one
// signal duplicated into both channels) or carries real stereo content.
//
// The decision is energy based: the RMS of the side signal (L-R) across an
// analysis window that starts at the first non-silent frame. Silence holds
// no stereo information, so a silent pre-roll is skipped permanently and an
// asset that never rises above the silence threshold classifies as dual
// mono. Low-level noise and dither keep the side signal well below the
// threshold, while any real stereo content pushes it far above, so a single
// threshold separates the two cleanly.
package stereo

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/farcloser/haplo/internal/audit/shared"
	"github.com/farcloser/haplo/internal/types"
)

// SampleReader is the slice of a container stream classification needs.
// Reads may be short and frame alignment is not guaranteed.
type SampleReader interface {
	Read(dst []int) (int, error)
}

type Options struct {
	SilenceThresholdDb float64 // frames below this on both channels are pre-roll silence (default -60)
	DiffThresholdDb    float64 // side RMS below this = dual mono (default -60)
	WindowSec          int     // analysis window after signal start (default 10)
}

func DefaultOptions() Options {
	return Options{
		SilenceThresholdDb: -60.0,
		DiffThresholdDb:    -60.0,
		WindowSec:          10,
	}
}

var errNotStereo = errors.New("classification needs exactly two channels")

// Classify runs the dual-mono decision over one stream traversal and
// returns the verdict with the measurements behind it. A read error before
// the first frame is fatal; one mid-analysis just ends the window, so a
// corrupt tail cannot abort an otherwise decodable asset.
func Classify(r SampleReader, spec types.AudioSpec, opts Options) (*types.StereoReport, error) {
	if spec.Channels != 2 {
		return nil, fmt.Errorf("%w: got %d", errNotStereo, spec.Channels)
	}

	enc, err := types.EncodingFor(spec)
	if err != nil {
		return nil, err
	}

	if opts.SilenceThresholdDb == 0 {
		opts.SilenceThresholdDb = DefaultOptions().SilenceThresholdDb
	}

	if opts.DiffThresholdDb == 0 {
		opts.DiffThresholdDb = DefaultOptions().DiffThresholdDb
	}

	if opts.WindowSec <= 0 {
		opts.WindowSec = DefaultOptions().WindowSec
	}

	silence := shared.DbToAmplitude(opts.SilenceThresholdDb)
	diff := shared.DbToAmplitude(opts.DiffThresholdDb)
	window := uint64(opts.WindowSec) * uint64(spec.SampleRate) //nolint:gosec // both checked non-negative

	var (
		started  bool
		skipped  uint64
		analyzed uint64
		energy   float64 // sum of (L-R)^2 across the window

		left, right []float64 // analyzed window, kept for the report
	)

	// pending holds a left sample whose right half has not arrived yet, so
	// frames split across reads survive.
	var (
		pending    int
		hasPending bool
	)

	buf := make([]int, 2*4096)

	for analyzed < window {
		n, err := r.Read(buf)

		for _, raw := range buf[:n] {
			if !hasPending {
				pending = raw
				hasPending = true

				continue
			}

			hasPending = false

			lf := float64(enc.Normalize(pending))
			rf := float64(enc.Normalize(raw))

			if !started {
				if math.Abs(lf) < silence && math.Abs(rf) < silence {
					skipped++

					continue
				}

				started = true
			}

			d := lf - rf
			energy += d * d

			left = append(left, lf)
			right = append(right, rf)

			analyzed++
			if analyzed >= window {
				break
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			if analyzed == 0 && skipped == 0 {
				return nil, err
			}

			break
		}
	}

	report := &types.StereoReport{
		Analyzed: analyzed,
		Skipped:  skipped,
	}

	if analyzed == 0 {
		report.Verdict = types.VerdictDualMono
		report.SideRmsDb = shared.FloorDb
		report.LeftRmsDb = shared.FloorDb
		report.RightRmsDb = shared.FloorDb

		return report, nil
	}

	report.SideRms = math.Sqrt(energy / float64(analyzed))
	report.SideRmsDb = shared.AmplitudeToDb(report.SideRms)

	if report.SideRms < diff {
		report.Verdict = types.VerdictDualMono
	} else {
		report.Verdict = types.VerdictTrueStereo
	}

	fillMetrics(report, left, right)

	return report, nil
}

//nolint:staticcheck // too dumb on Db vs. DB
package types

// SampleFormat distinguishes integer PCM from IEEE float PCM.
type SampleFormat int

const (
	FormatInteger SampleFormat = iota
	FormatFloat
)

func (f SampleFormat) String() string {
	switch f {
	case FormatInteger:
		return "integer"
	case FormatFloat:
		return "float"
	}

	return "unknown"
}

type BitDepth uint

const (
	Depth8  BitDepth = 8
	Depth16 BitDepth = 16
	Depth24 BitDepth = 24
	Depth32 BitDepth = 32
)

// AudioSpec describes the PCM layout of an asset as declared by its container
// header. Decoders hand samples over already sign-extended, so an AudioSpec
// always describes signed PCM regardless of how the container stores bytes.
type AudioSpec struct {
	SampleRate int
	Channels   uint
	BitDepth   BitDepth
	Format     SampleFormat
}

// FrameSize returns the sample count for one frame's worth of channels.
func (s AudioSpec) FrameSize() int {
	return int(s.Channels) //nolint:gosec // channel counts are small
}

// Mono returns the same spec reduced to a single channel.
func (s AudioSpec) Mono() AudioSpec {
	s.Channels = 1

	return s
}

// Verdict is the outcome of classifying a two-channel asset.
type Verdict int

const (
	VerdictDualMono   Verdict = iota // both channels carry the same signal
	VerdictTrueStereo                // channels genuinely differ
)

func (v Verdict) String() string {
	switch v {
	case VerdictDualMono:
		return "dual-mono"
	case VerdictTrueStereo:
		return "true-stereo"
	}

	return "unknown"
}

/*
Stereo Report Interpretation

## Side Signal Level

The verdict hinges on the RMS of the side signal (L-R) across the analyzed
window. Identical channels cancel exactly; real stereo content does not.

| SideRmsDb     | Interpretation                          |
|---------------|-----------------------------------------|
| -120 dB       | Bit-identical channels (exact cancel)   |
| < -80 dB      | Identical for practical purposes        |
| -80 to -60 dB | Near-identical. Dither or codec noise.  |
| -60 to -40 dB | Minimal separation. Narrow stereo.      |
| > -40 dB      | Real stereo content present.            |

## Correlation Cross-Check

| Correlation | SideRmsDb | Diagnosis                     |
|-------------|-----------|-------------------------------|
| > 0.98      | < -60 dB  | Dual mono                     |
| < -0.95     | —         | Inverted phase (L = -R)       |
| 0.5 to 0.98 | > -40 dB  | Normal stereo                 |
| < 0.5       | —         | Wide/decorrelated stereo      |

An inverted-phase pair is loud in the side signal, so it classifies as true
stereo: reducing it to one channel would discard the polarity flip.

## Window Accounting

Analyzed counts frames inside the analysis window; Skipped counts the silent
pre-roll excluded before the signal started. Analyzed == 0 means the asset
never rose above the silence threshold, which classifies as dual mono (there
is no stereo information in silence).
*/

// StereoReport carries the measurements behind a verdict.
type StereoReport struct {
	Verdict     Verdict
	SideRms     float64 // RMS of (L-R) over the analyzed window, linear
	SideRmsDb   float64 // same in dBFS; very negative = identical channels
	Correlation float64 // 1.0 = identical, 0 = uncorrelated, -1.0 = inverted
	LeftRmsDb   float64 // RMS of left channel over the analyzed window
	RightRmsDb  float64 // RMS of right channel over the analyzed window
	ImbalanceDb float64 // LeftRmsDb - RightRmsDb; positive = left louder
	Analyzed    uint64  // frames inside the analysis window
	Skipped     uint64  // leading silent frames excluded from the window
}

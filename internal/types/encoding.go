package types

import (
	"fmt"
	"math"
)

// SampleEncoding enumerates the sample encodings the pipeline understands.
// The set is closed: a combination a container reports outside of it is
// rejected up front by EncodingFor, never misread sample by sample.
type SampleEncoding int

const (
	EncodingInt8 SampleEncoding = iota
	EncodingInt16
	EncodingInt24
	EncodingInt32
	EncodingFloat32
)

func (e SampleEncoding) String() string {
	switch e {
	case EncodingInt8:
		return "int8"
	case EncodingInt16:
		return "int16"
	case EncodingInt24:
		return "int24"
	case EncodingInt32:
		return "int32"
	case EncodingFloat32:
		return "float32"
	}

	return "unknown"
}

// Full-scale positive value per integer encoding. Dividing by the most
// positive value keeps +full-scale at exactly 1.0; the most negative sample
// lands just below -1.0.
const (
	fullScale8  = 127.0
	fullScale16 = 32767.0
	fullScale24 = 8388607.0
	fullScale32 = 2147483647.0
)

// EncodingFor maps a spec onto the closed encoding set. Anything else fails
// with ErrUnsupportedEncoding naming the offending combination.
func EncodingFor(spec AudioSpec) (SampleEncoding, error) {
	switch spec.Format {
	case FormatInteger:
		switch spec.BitDepth {
		case Depth8:
			return EncodingInt8, nil
		case Depth16:
			return EncodingInt16, nil
		case Depth24:
			return EncodingInt24, nil
		case Depth32:
			return EncodingInt32, nil
		}
	case FormatFloat:
		if spec.BitDepth == Depth32 {
			return EncodingFloat32, nil
		}
	}

	return 0, fmt.Errorf("%w: %d-bit %s", ErrUnsupportedEncoding, spec.BitDepth, spec.Format)
}

// Normalize converts one raw sample to a float32 amplitude in roughly
// [-1.0, 1.0]. Integer samples must already be sign-extended. Float samples
// travel as their IEEE 754 bit pattern and pass through unchanged, without
// clamping. Classification only needs approximate amplitude, so the rounding
// inherent in single-precision division is acceptable.
func (e SampleEncoding) Normalize(raw int) float32 {
	switch e {
	case EncodingInt8:
		return float32(raw) / fullScale8
	case EncodingInt16:
		return float32(raw) / fullScale16
	case EncodingInt24:
		return float32(raw) / fullScale24
	case EncodingInt32:
		return float32(raw) / fullScale32
	case EncodingFloat32:
		return math.Float32frombits(uint32(int32(raw))) //nolint:gosec // low 32 bits are the stored bit pattern
	}

	return 0
}

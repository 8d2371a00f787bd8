// Package wav adapts github.com/go-audio/wav to the container contracts.
//
// Integer PCM decodes sign-extended. 32-bit IEEE float decodes as the raw
// bit pattern (the library reads by depth, not by audio format), which is
// exactly what keeps reductions bit-exact: the pattern is never converted,
// and re-encoding writes the same four bytes back. WAV stores 8-bit PCM as
// unsigned bytes; the adapter recenters on both sides so the rest of the
// pipeline only ever sees signed samples.
package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/farcloser/primordium/fault"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/types"
)

const (
	audioFormatPCM       = 1
	audioFormatIEEEFloat = 3
)

type Codec struct{}

func (Codec) Name() string {
	return "wav"
}

func (Codec) Extensions() []string {
	return []string{"wav", "wave"}
}

func (Codec) Decode(r io.ReadSeeker) (container.Stream, error) {
	dec := wav.NewDecoder(r)

	dec.ReadInfo()

	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnreadableContainer, err)
	}

	spec, err := buildSpec(dec)
	if err != nil {
		return nil, err
	}

	return &stream{
		dec:      dec,
		spec:     spec,
		buf:      &audio.IntBuffer{},
		unsigned: spec.Format == types.FormatInteger && spec.BitDepth == types.Depth8,
	}, nil
}

func (Codec) Encode(w io.WriteSeeker, spec types.AudioSpec) (container.Writer, error) {
	enc := wav.NewEncoder(w,
		spec.SampleRate,
		int(spec.BitDepth),
		int(spec.Channels), //nolint:gosec // channel counts are small
		wavAudioFormat(spec.Format),
	)

	return &writer{
		enc:      enc,
		format:   &audio.Format{NumChannels: int(spec.Channels), SampleRate: spec.SampleRate}, //nolint:gosec // channel counts are small
		depth:    int(spec.BitDepth),
		unsigned: spec.Format == types.FormatInteger && spec.BitDepth == types.Depth8,
	}, nil
}

func buildSpec(dec *wav.Decoder) (types.AudioSpec, error) {
	spec := types.AudioSpec{
		SampleRate: int(dec.SampleRate),
		Channels:   uint(dec.NumChans),
		BitDepth:   types.BitDepth(dec.BitDepth),
	}

	switch dec.WavAudioFormat {
	case audioFormatPCM:
		spec.Format = types.FormatInteger
	case audioFormatIEEEFloat:
		spec.Format = types.FormatFloat
	default:
		return types.AudioSpec{}, fmt.Errorf(
			"%w: wav audio format %d",
			types.ErrUnsupportedEncoding,
			dec.WavAudioFormat,
		)
	}

	if spec.SampleRate <= 0 || spec.Channels == 0 || spec.BitDepth == 0 {
		return types.AudioSpec{}, fmt.Errorf(
			"%w: rate %d, %d channels, %d-bit",
			types.ErrUnreadableContainer,
			spec.SampleRate,
			spec.Channels,
			spec.BitDepth,
		)
	}

	return spec, nil
}

func wavAudioFormat(format types.SampleFormat) int {
	if format == types.FormatFloat {
		return audioFormatIEEEFloat
	}

	return audioFormatPCM
}

type stream struct {
	dec      *wav.Decoder
	spec     types.AudioSpec
	buf      *audio.IntBuffer
	unsigned bool
}

func (s *stream) Spec() types.AudioSpec {
	return s.spec
}

func (s *stream) Read(dst []int) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	s.buf.Data = dst

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if n == 0 {
		return 0, io.EOF
	}

	if s.unsigned {
		for i := range n {
			dst[i] -= 128
		}
	}

	return n, nil
}

func (s *stream) Close() error {
	return nil
}

type writer struct {
	enc      *wav.Encoder
	format   *audio.Format
	scratch  []int
	depth    int
	unsigned bool
	wrote    bool
}

func (w *writer) Write(src []int) error {
	if len(src) == 0 {
		return nil
	}

	data := src

	if w.unsigned {
		if cap(w.scratch) < len(src) {
			w.scratch = make([]int, len(src))
		}

		data = w.scratch[:len(src)]
		for i, v := range src {
			data[i] = v + 128
		}
	}

	buf := &audio.IntBuffer{Data: data, Format: w.format, SourceBitDepth: w.depth}

	if err := w.enc.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
	}

	w.wrote = true

	return nil
}

func (w *writer) Close() error {
	// The encoder only emits headers on Write, and Close alone would leave
	// a zero-frame output headerless.
	if !w.wrote {
		empty := &audio.IntBuffer{Data: []int{}, Format: w.format, SourceBitDepth: w.depth}
		if err := w.enc.Write(empty); err != nil {
			return fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
		}
	}

	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
	}

	return nil
}

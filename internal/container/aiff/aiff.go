// Package aiff adapts github.com/go-audio/aiff to the container contracts.
//
// Classic AIFF carries big-endian signed integer PCM at every depth,
// including 8-bit, so no recentering is needed anywhere. AIFC float
// variants are not supported.
package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/farcloser/primordium/fault"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/types"
)

type Codec struct{}

func (Codec) Name() string {
	return "aiff"
}

func (Codec) Extensions() []string {
	return []string{"aif", "aiff", "aifc"}
}

func (Codec) Decode(r io.ReadSeeker) (container.Stream, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a decodable aiff file", types.ErrUnreadableContainer)
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("%w: aiff header carries no format", types.ErrUnreadableContainer)
	}

	spec := types.AudioSpec{
		SampleRate: format.SampleRate,
		Channels:   uint(format.NumChannels), //nolint:gosec // channel counts are small
		BitDepth:   types.BitDepth(dec.BitDepth),
		Format:     types.FormatInteger,
	}

	return &stream{dec: dec, spec: spec, buf: &audio.IntBuffer{}}, nil
}

func (Codec) Encode(w io.WriteSeeker, spec types.AudioSpec) (container.Writer, error) {
	if spec.Format != types.FormatInteger {
		return nil, fmt.Errorf("%w: aiff only carries integer PCM", types.ErrUnsupportedEncoding)
	}

	enc := aiff.NewEncoder(w,
		spec.SampleRate,
		int(spec.BitDepth),
		int(spec.Channels), //nolint:gosec // channel counts are small
	)

	return &writer{
		enc:    enc,
		format: &audio.Format{NumChannels: int(spec.Channels), SampleRate: spec.SampleRate}, //nolint:gosec // channel counts are small
		depth:  int(spec.BitDepth),
	}, nil
}

type stream struct {
	dec  *aiff.Decoder
	spec types.AudioSpec
	buf  *audio.IntBuffer
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

	return n, nil
}

func (s *stream) Close() error {
	return nil
}

type writer struct {
	enc    *aiff.Encoder
	format *audio.Format
	depth  int
	wrote  bool
}

func (w *writer) Write(src []int) error {
	if len(src) == 0 {
		return nil
	}

	buf := &audio.IntBuffer{Data: src, Format: w.format, SourceBitDepth: w.depth}

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

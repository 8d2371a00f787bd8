// Package reduce copies a single channel out of an interleaved sample
// stream, verbatim. No normalization and no numeric conversion happen on
// this path: whatever raw value the decoder produced for channel 0 is what
// the writer receives, which is what makes a reduction lossless.
package reduce

import (
	"errors"
	"io"
	"log/slog"
)

// Reader is the stream side of an extraction.
type Reader interface {
	Read(dst []int) (int, error)
}

// Writer is the output side of an extraction.
type Writer interface {
	Write(src []int) error
}

var errNoChannels = errors.New("extraction needs at least one channel")

// Extract copies channel 0 of a stream carrying the given channel count
// into w and returns the number of frames written. A stream ending mid-frame
// still contributes its channel-0 sample when that sample arrived. Reader
// and writer errors propagate as they are.
func Extract(r Reader, w Writer, channels uint) (uint64, error) {
	if channels == 0 {
		return 0, errNoChannels
	}

	slog.Debug("reduce.Extract", "channels", channels)

	stride := int(channels) //nolint:gosec // channel counts are small
	buf := make([]int, stride*4096)
	out := make([]int, 0, 4096)

	var (
		frames uint64
		phase  int // position inside the current frame, survives short reads
	)

	for {
		n, err := r.Read(buf)

		if n > 0 {
			out = out[:0]

			for _, raw := range buf[:n] {
				if phase == 0 {
					out = append(out, raw)
					frames++
				}

				phase++
				if phase == stride {
					phase = 0
				}
			}

			if len(out) > 0 {
				if werr := w.Write(out); werr != nil {
					return frames, werr
				}
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return frames, err
		}
	}

	slog.Debug("reduce.Extract done", "frames", frames)

	return frames, nil
}

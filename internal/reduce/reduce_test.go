package reduce_test

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/farcloser/haplo/internal/reduce"
)

type chunkReader struct {
	data  []int
	pos   int
	chunk int
}

func (r *chunkReader) Read(dst []int) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	n := len(dst)
	if r.chunk > 0 && r.chunk < n {
		n = r.chunk
	}

	if remaining := len(r.data) - r.pos; n > remaining {
		n = remaining
	}

	copy(dst, r.data[r.pos:r.pos+n])
	r.pos += n

	return n, nil
}

// captureWriter collects written samples, optionally failing after a number
// of calls.
type captureWriter struct {
	samples   []int
	calls     int
	failAfter int
	err       error
}

func (w *captureWriter) Write(src []int) error {
	w.calls++
	if w.err != nil && w.calls > w.failAfter {
		return w.err
	}

	w.samples = append(w.samples, src...)

	return nil
}

func TestExtractFirstChannel(t *testing.T) {
	t.Parallel()

	r := &chunkReader{data: []int{1, -1, 2, -2, 3, -3, 4, -4}}
	w := &captureWriter{}

	frames, err := reduce.Extract(r, w, 2)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}

	if want := []int{1, 2, 3, 4}; !slices.Equal(w.samples, want) {
		t.Errorf("extracted %v, want %v", w.samples, want)
	}
}

func TestExtractSixChannels(t *testing.T) {
	t.Parallel()

	var data []int
	for frame := range 5 {
		for ch := range 6 {
			data = append(data, frame*10+ch)
		}
	}

	w := &captureWriter{}

	frames, err := reduce.Extract(&chunkReader{data: data}, w, 6)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}

	if want := []int{0, 10, 20, 30, 40}; !slices.Equal(w.samples, want) {
		t.Errorf("extracted %v, want %v", w.samples, want)
	}
}

// Short reads split frames; the channel phase has to survive across them.
func TestExtractShortReads(t *testing.T) {
	t.Parallel()

	data := []int{1, -1, 2, -2, 3, -3, 4, -4, 5, -5}
	w := &captureWriter{}

	frames, err := reduce.Extract(&chunkReader{data: data, chunk: 3}, w, 2)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if frames != 5 {
		t.Errorf("frames = %d, want 5", frames)
	}

	if want := []int{1, 2, 3, 4, 5}; !slices.Equal(w.samples, want) {
		t.Errorf("extracted %v, want %v", w.samples, want)
	}
}

// A stream ending mid-frame still contributes its channel-0 sample.
func TestExtractTruncatedFinalFrame(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}

	frames, err := reduce.Extract(&chunkReader{data: []int{1, -1, 2}}, w, 2)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}

	if want := []int{1, 2}; !slices.Equal(w.samples, want) {
		t.Errorf("extracted %v, want %v", w.samples, want)
	}
}

func TestExtractEmptyStream(t *testing.T) {
	t.Parallel()

	w := &captureWriter{}

	frames, err := reduce.Extract(&chunkReader{}, w, 2)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	if frames != 0 {
		t.Errorf("frames = %d, want 0", frames)
	}

	if w.calls != 0 {
		t.Errorf("writer called %d times on an empty stream", w.calls)
	}
}

func TestExtractRejectsZeroChannels(t *testing.T) {
	t.Parallel()

	if _, err := reduce.Extract(&chunkReader{}, &captureWriter{}, 0); err == nil {
		t.Fatal("Extract() accepted zero channels")
	}
}

func TestExtractPropagatesWriteError(t *testing.T) {
	t.Parallel()

	errSink := errors.New("sink failed")
	w := &captureWriter{err: errSink}

	_, err := reduce.Extract(&chunkReader{data: []int{1, -1, 2, -2}}, w, 2)
	if !errors.Is(err, errSink) {
		t.Fatalf("Extract() error = %v, want the writer error", err)
	}
}

func TestExtractPropagatesReadError(t *testing.T) {
	t.Parallel()

	errSource := errors.New("source failed")

	_, err := reduce.Extract(&failingReader{err: errSource}, &captureWriter{}, 2)
	if !errors.Is(err, errSource) {
		t.Fatalf("Extract() error = %v, want the reader error", err)
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(_ []int) (int, error) {
	return 0, r.err
}

// Package container adapts audio container codecs to the sample stream
// contracts the pipeline consumes. Samples cross the boundary raw: integer
// encodings sign-extended into ints, float encodings as their IEEE 754 bit
// pattern, so a verbatim copy through a Stream and a Writer is bit-exact.
package container

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/farcloser/haplo/internal/types"
)

// A Stream is one sequential traversal of an asset's interleaved raw samples.
type Stream interface {
	// Spec describes the PCM layout declared by the container header.
	Spec() types.AudioSpec

	// Read fills dst with raw interleaved samples and reports how many it
	// produced. Short reads are legal anywhere and frame alignment is not
	// guaranteed. The stream is finished when n == 0 with io.EOF.
	Read(dst []int) (int, error)

	Close() error
}

// A Writer persists raw interleaved samples. Close flushes and patches the
// container header; the output is not valid before Close returns nil.
type Writer interface {
	Write(src []int) error
	Close() error
}

// A Codec decodes and encodes one container format.
type Codec interface {
	Name() string

	// Extensions lists the lowercase file extensions the codec claims,
	// without the leading dot.
	Extensions() []string

	Decode(r io.ReadSeeker) (Stream, error)
	Encode(w io.WriteSeeker, spec types.AudioSpec) (Writer, error)
}

// Registry resolves codecs from file extensions.
type Registry struct {
	codecs map[string]Codec

	mtx *sync.Mutex
}

func NewRegistry(codecs ...Codec) *Registry {
	reg := &Registry{
		codecs: make(map[string]Codec),
		mtx:    &sync.Mutex{},
	}

	for _, codec := range codecs {
		reg.Register(codec)
	}

	return reg
}

func (reg *Registry) Register(codec Codec) {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	for _, ext := range codec.Extensions() {
		reg.codecs[ext] = codec
	}
}

func (reg *Registry) Get(ext string) (Codec, bool) {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	codec, ok := reg.codecs[strings.ToLower(strings.TrimPrefix(ext, "."))]

	return codec, ok
}

// ForPath resolves the codec claiming the path's extension.
func (reg *Registry) ForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)

	codec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: no codec for %q", types.ErrUnreadableContainer, ext)
	}

	return codec, nil
}

// Open starts a fresh sample stream over the asset at path. The returned
// Stream owns the underlying file handle and releases it on Close.
func (reg *Registry) Open(path string) (Stream, error) {
	codec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path) //nolint:gosec // pipeline opens user-specified audio assets
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnreadableContainer, err)
	}

	stream, err := codec.Decode(file)
	if err != nil {
		_ = file.Close()

		return nil, err
	}

	return &ownedStream{Stream: stream, file: file}, nil
}

// Create opens a Writer for a new asset at path, creating the parent
// directory if missing. The returned Writer owns the file handle. A partial
// file may exist after a failed Write or Close; removing it is the caller's
// call to make.
func (reg *Registry) Create(path string, spec types.AudioSpec) (Writer, error) {
	codec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
	}

	file, err := os.Create(path) //nolint:gosec // pipeline creates user-specified output paths
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
	}

	writer, err := codec.Encode(file, spec)
	if err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("%w: %w", types.ErrWriteFailure, err)
	}

	return &ownedWriter{Writer: writer, file: file}, nil
}

type ownedStream struct {
	Stream

	file *os.File
}

func (s *ownedStream) Close() error {
	err := s.Stream.Close()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}

	return err
}

type ownedWriter struct {
	Writer

	file *os.File
}

func (w *ownedWriter) Close() error {
	err := w.Writer.Close()

	if cerr := w.file.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", types.ErrWriteFailure, cerr)
	}

	return err
}

package container_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/types"
)

type stubStream struct {
	spec types.AudioSpec
}

func (s *stubStream) Spec() types.AudioSpec     { return s.spec }
func (s *stubStream) Read(_ []int) (int, error) { return 0, io.EOF }
func (s *stubStream) Close() error              { return nil }

type stubWriter struct{}

func (w *stubWriter) Write(_ []int) error { return nil }
func (w *stubWriter) Close() error        { return nil }

type stubCodec struct {
	exts []string
}

func (c *stubCodec) Name() string         { return "stub" }
func (c *stubCodec) Extensions() []string { return c.exts }

func (c *stubCodec) Decode(_ io.ReadSeeker) (container.Stream, error) {
	return &stubStream{spec: types.AudioSpec{
		SampleRate: 44100,
		Channels:   2,
		BitDepth:   types.Depth16,
		Format:     types.FormatInteger,
	}}, nil
}

func (c *stubCodec) Encode(_ io.WriteSeeker, _ types.AudioSpec) (container.Writer, error) {
	return &stubWriter{}, nil
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()

	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	for _, ext := range []string{"tst", ".tst", "TST", ".TsT"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("Get(%q) did not resolve the registered codec", ext)
		}
	}

	if _, ok := reg.Get("other"); ok {
		t.Error("Get() resolved a codec for an unregistered extension")
	}
}

func TestRegistryForPath(t *testing.T) {
	t.Parallel()

	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	if _, err := reg.ForPath("/some/dir/asset.tst"); err != nil {
		t.Fatalf("ForPath() returned error: %v", err)
	}

	_, err := reg.ForPath("/some/dir/asset.mp3")
	if !errors.Is(err, types.ErrUnreadableContainer) {
		t.Fatalf("ForPath() error = %v, want ErrUnreadableContainer", err)
	}
}

func TestRegistryOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "asset.tst")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	stream, err := reg.Open(path)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}

	if stream.Spec().SampleRate != 44100 {
		t.Errorf("Spec().SampleRate = %d, want 44100", stream.Spec().SampleRate)
	}

	if err := stream.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}
}

func TestRegistryOpenMissingFile(t *testing.T) {
	t.Parallel()

	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	_, err := reg.Open(filepath.Join(t.TempDir(), "absent.tst"))
	if !errors.Is(err, types.ErrUnreadableContainer) {
		t.Fatalf("Open() error = %v, want ErrUnreadableContainer", err)
	}
}

func TestRegistryCreateMakesParent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mono", "asset.tst")
	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	writer, err := reg.Create(path, types.AudioSpec{SampleRate: 44100, Channels: 1})
	if err != nil {
		t.Fatalf("Create() returned error: %v", err)
	}

	if err := writer.Close(); err != nil {
		t.Errorf("Close() returned error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Create() left no file behind: %v", err)
	}
}

// An unknown extension must fail before any filesystem side effect.
func TestRegistryCreateUnknownExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "mono", "asset.xyz")
	reg := container.NewRegistry(&stubCodec{exts: []string{"tst"}})

	_, err := reg.Create(path, types.AudioSpec{})
	if !errors.Is(err, types.ErrUnreadableContainer) {
		t.Fatalf("Create() error = %v, want ErrUnreadableContainer", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "mono")); !os.IsNotExist(err) {
		t.Error("Create() made the parent directory despite failing")
	}
}

package haplo_test

import (
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/farcloser/haplo"
	"github.com/farcloser/haplo/internal/container"
	"github.com/farcloser/haplo/internal/types"
)

func TestClassifyFileDualMono(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "asset.wav")
	mono := sine(rate, 0.1)
	writeAsset(t, input, spec16(2), interleave(mono, mono))

	report, err := haplo.ClassifyFile(input, haplo.DefaultOptions())
	if err != nil {
		t.Fatalf("ClassifyFile() returned error: %v", err)
	}

	if report.Verdict != types.VerdictDualMono {
		t.Errorf("verdict = %v, want dual mono", report.Verdict)
	}
}

func TestClassifyFileTrueStereo(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "asset.wav")
	left := sine(rate, 0.1)
	writeAsset(t, input, spec16(2), interleave(left, invert(left)))

	report, err := haplo.ClassifyFile(input, haplo.DefaultOptions())
	if err != nil {
		t.Fatalf("ClassifyFile() returned error: %v", err)
	}

	if report.Verdict != types.VerdictTrueStereo {
		t.Errorf("verdict = %v, want true stereo", report.Verdict)
	}

	if report.Correlation > -0.9 {
		t.Errorf("correlation = %v, want strongly negative", report.Correlation)
	}
}

// A float asset opening on a second of digital silence before the tone:
// the lead-in is skipped, the tone is identical on both channels, dual mono.
func TestClassifyFileFloatSilenceLeadIn(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "asset.wav")

	mono := make([]int, 0, 2*rate)
	for range rate {
		mono = append(mono, int(int32(math.Float32bits(0))))
	}

	for i := range rate {
		v := float32(0.1 * math.Sin(2*math.Pi*440*float64(i)/rate))
		mono = append(mono, int(int32(math.Float32bits(v))))
	}

	spec := types.AudioSpec{SampleRate: rate, Channels: 2, BitDepth: types.Depth32, Format: types.FormatFloat}
	writeAsset(t, input, spec, interleave(mono, mono))

	report, err := haplo.ClassifyFile(input, haplo.DefaultOptions())
	if err != nil {
		t.Fatalf("ClassifyFile() returned error: %v", err)
	}

	if report.Verdict != types.VerdictDualMono {
		t.Fatalf("verdict = %v, want dual mono", report.Verdict)
	}

	if report.Skipped < rate {
		t.Errorf("skipped = %d, want at least the %d silent frames", report.Skipped, rate)
	}
}

func TestClassifyFileRejectsMono(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "asset.wav")
	writeAsset(t, input, spec16(1), sine(128, 0.1))

	if _, err := haplo.ClassifyFile(input, haplo.DefaultOptions()); err == nil {
		t.Fatal("ClassifyFile() accepted a mono asset")
	}
}

func TestClassifyFileMissing(t *testing.T) {
	t.Parallel()

	_, err := haplo.ClassifyFile(filepath.Join(t.TempDir(), "absent.wav"), haplo.DefaultOptions())
	if !errors.Is(err, haplo.ErrUnreadableContainer) {
		t.Fatalf("ClassifyFile() error = %v, want ErrUnreadableContainer", err)
	}
}

// Classify pulls its stream from the factory, so a failing factory is the
// whole story.
func TestClassifyFactoryError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("no stream for you")

	_, err := haplo.Classify(func() (container.Stream, error) {
		return nil, errBoom
	}, haplo.DefaultOptions())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Classify() error = %v, want the factory error", err)
	}
}

func TestClassifyFileConcurrent(t *testing.T) {
	t.Parallel()

	input := filepath.Join(t.TempDir(), "asset.wav")
	mono := sine(rate/4, 0.1)
	writeAsset(t, input, spec16(2), interleave(mono, mono))

	var wg sync.WaitGroup

	verdicts := make([]types.Verdict, 8)
	errs := make([]error, 8)

	for i := range verdicts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			report, err := haplo.ClassifyFile(input, haplo.DefaultOptions())
			if err != nil {
				errs[i] = err

				return
			}

			verdicts[i] = report.Verdict
		}()
	}

	wg.Wait()

	for i := range verdicts {
		if errs[i] != nil {
			t.Fatalf("concurrent ClassifyFile() returned error: %v", errs[i])
		}

		if verdicts[i] != types.VerdictDualMono {
			t.Errorf("concurrent verdict %d = %v, want dual mono", i, verdicts[i])
		}
	}
}

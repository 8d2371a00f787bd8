// Package output provides shared result serialization for haplo JSON output.
package output

import (
	"github.com/farcloser/haplo"
	"github.com/farcloser/haplo/internal/types"
)

// SpecToMap converts a container header spec into the canonical map
// structure used for JSON and JSONL serialization.
func SpecToMap(spec types.AudioSpec) map[string]any {
	return map[string]any{
		"sample_rate": spec.SampleRate,
		"channels":    spec.Channels,
		"bit_depth":   int(spec.BitDepth), //nolint:gosec // audio format values are small constants
		"format":      spec.Format.String(),
	}
}

// ReportToMap converts a classification report.
func ReportToMap(report *types.StereoReport) map[string]any {
	return map[string]any{
		"verdict":      report.Verdict.String(),
		"side_rms_db":  report.SideRmsDb,
		"correlation":  report.Correlation,
		"left_rms_db":  report.LeftRmsDb,
		"right_rms_db": report.RightRmsDb,
		"imbalance_db": report.ImbalanceDb,
		"analyzed":     report.Analyzed,
		"skipped":      report.Skipped,
	}
}

// ResultToMap converts a pipeline result.
func ResultToMap(result *haplo.Result) map[string]any {
	meta := map[string]any{
		"action":  result.Action.String(),
		"message": result.Message,
		"spec":    SpecToMap(result.Spec),
	}

	if result.Replaced {
		meta["output"] = result.OutputPath
	}

	if result.Report != nil {
		meta["stereo"] = ReportToMap(result.Report)
	}

	return meta
}

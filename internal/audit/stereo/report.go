package stereo

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/haplo/internal/audit/shared"
	"github.com/farcloser/haplo/internal/types"
)

// fillMetrics computes the diagnostic half of the report over the analyzed
// window. Diagnostics never influence the verdict.
func fillMetrics(report *types.StereoReport, left, right []float64) {
	n := float64(len(left))

	correlation := stat.Correlation(left, right, nil)
	if math.IsNaN(correlation) {
		// Zero variance on either side (constant signal).
		correlation = 0
	}

	report.Correlation = correlation
	report.LeftRmsDb = shared.AmplitudeToDb(math.Sqrt(floats.Dot(left, left) / n))
	report.RightRmsDb = shared.AmplitudeToDb(math.Sqrt(floats.Dot(right, right) / n))
	report.ImbalanceDb = report.LeftRmsDb - report.RightRmsDb
}

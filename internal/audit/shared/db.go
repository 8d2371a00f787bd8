//nolint:staticcheck // too dumb on Db vs. DB
package shared

import "math"

// FloorDb stands in for -Inf when a level is exactly zero.
const FloorDb = -120.0

// DbToAmplitude converts a dBFS level to a linear amplitude.
func DbToAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}

// AmplitudeToDb converts a linear amplitude to dBFS. Zero maps to FloorDb.
func AmplitudeToDb(amplitude float64) float64 {
	db := 20 * math.Log10(amplitude)
	if math.IsInf(db, -1) {
		return FloorDb
	}

	return db
}

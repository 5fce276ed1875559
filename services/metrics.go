package services

import "math"

// Fixed takeoff constants. These are the formulas, not configuration,
// and must not become it.
const (
	sqInchesPerSqFt = 144.0
	sqFtToSqMeter   = 0.092903
	laminateSides   = 2.0  // laminate covers both faces of a shutter
	laminateWastage = 1.20 // 20% cutting wastage allowance
	laminateSheetSF = 32.0 // one standard laminate sheet, in sq ft
)

// RowMetrics holds the derived quantities for one grouped dimension row.
// Values are unrounded except LaminateSheets; the table assemblers apply
// the per-view rounding.
type RowMetrics struct {
	SqFt           float64
	SqMeter        float64
	LaminateSqFt   float64
	LaminateSheets int
}

// ComputeRowMetrics derives area and laminate consumption for a dimension
// group: (width × height × qty) / 144 sq ft, metric conversion, double-sided
// laminate with wastage, and whole sheets. A partial sheet still consumes a
// full one.
func ComputeRowMetrics(widthInches, heightInches, quantity float64) RowMetrics {
	sqFt := (widthInches * heightInches * quantity) / sqInchesPerSqFt
	laminateSqFt := sqFt * laminateSides * laminateWastage

	return RowMetrics{
		SqFt:           sqFt,
		SqMeter:        sqFt * sqFtToSqMeter,
		LaminateSqFt:   laminateSqFt,
		LaminateSheets: int(math.Ceil(laminateSqFt / laminateSheetSF)),
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

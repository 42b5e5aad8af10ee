package nec

import "math"

// DefaultFillFraction is the usable share of a raceway's cross-section
// (Chapter 9 Table 1, more than two conductors).
const DefaultFillFraction = 0.4

// ConductorRun is a count of same-size conductors occupying a raceway.
type ConductorRun struct {
	SizeAWG string
	Qty     int
}

// ConductorArea returns the cross-sectional area in square inches of one
// conductor, computed from its outside diameter.
func (e *Engine) ConductorArea(sizeAWG string) (float64, error) {
	od, err := e.tables.ConductorOD(sizeAWG)
	if err != nil {
		return 0, err
	}
	radius := od / 2
	return math.Pi * radius * radius, nil
}

// MinimumRacewaySize returns the smallest standard trade size whose usable
// area (trade area x fill fraction) accommodates the summed conductor areas.
// A non-positive fillFraction uses DefaultFillFraction. When no size fits,
// the largest available size is returned; callers must treat that as a
// possible under-sizing signal, not a guarantee.
func (e *Engine) MinimumRacewaySize(runs []ConductorRun, fillFraction float64) (float64, error) {
	if fillFraction <= 0 {
		fillFraction = DefaultFillFraction
	}
	required := 0.0
	for _, run := range runs {
		area, err := e.ConductorArea(run.SizeAWG)
		if err != nil {
			return 0, err
		}
		required += area * float64(run.Qty)
	}

	sizes := e.tables.TradeSizes()
	for _, trade := range sizes {
		area, err := e.tables.RacewayArea(trade)
		if err != nil {
			return 0, err
		}
		if required <= area*fillFraction {
			return trade, nil
		}
	}
	return sizes[len(sizes)-1], nil
}

package nec

import "github.com/gridwright/oneline/pkg/tables"

// Upsizing thresholds: a conductor derated by more than ~5% bumps the EGC
// one size step, more than ~35% bumps it two.
const (
	egcOneStepFactor = 1.05
	egcTwoStepFactor = 1.35
)

// EquipmentGroundSize returns the base EGC size for an OCPD rating.
func (e *Engine) EquipmentGroundSize(ocpdRatingA float64, material string) (string, error) {
	return e.tables.EGCSize(ocpdRatingA, material)
}

// UpsizedEquipmentGround returns the EGC size for an OCPD rating, upsized
// through the standard size order when the circuit conductors were upsized
// to compensate for derating. upsizingFactor is the ratio of the 90 C
// ampacity to the adjusted (derated) ampacity. The result clamps at the top
// of the size order.
func (e *Engine) UpsizedEquipmentGround(ocpdRatingA, upsizingFactor float64, material string) (string, error) {
	base, err := e.tables.EGCSize(ocpdRatingA, material)
	if err != nil {
		return "", err
	}
	if upsizingFactor <= egcOneStepFactor {
		return base, nil
	}
	idx := tables.SizeIndex(base)
	if idx < 0 {
		return base, nil
	}
	bump := 1
	if upsizingFactor >= egcTwoStepFactor {
		bump = 2
	}
	idx = min(idx+bump, len(tables.SizeOrder)-1)
	return tables.SizeOrder[idx], nil
}

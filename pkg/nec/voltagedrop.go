package nec

import "math"

// Impedance is a series resistance/reactance pair in ohms.
type Impedance struct {
	R float64
	X float64
}

// Magnitude returns |Z|.
func (z Impedance) Magnitude() float64 {
	return math.Hypot(z.R, z.X)
}

// Add returns the series sum of two impedances.
func (z Impedance) Add(other Impedance) Impedance {
	return Impedance{R: z.R + other.R, X: z.X + other.X}
}

// ConductorImpedance returns the total series impedance of a conductor run:
// per-1000-ft resistance and reactance scaled by length and divided across
// parallel sets.
func (e *Engine) ConductorImpedance(material, sizeAWG string, lengthFt float64, installation string, parallelSets int) (Impedance, error) {
	r, err := e.tables.ResistancePerKft(material, sizeAWG)
	if err != nil {
		return Impedance{}, err
	}
	x, err := e.tables.ReactancePerKft(installation)
	if err != nil {
		return Impedance{}, err
	}
	sets := parallelSets
	if sets < 1 {
		sets = 1
	}
	factor := lengthFt / 1000.0 / float64(sets)
	return Impedance{R: r * factor, X: x * factor}, nil
}

// PercentVoltageDrop computes the three-phase percent voltage drop
// 100 * sqrt(3) * I * (R*pf + X*sin(phi)) / V_LL. The power factor is
// clamped to [0, 1]. Returns 0 for a non-positive voltage.
func PercentVoltageDrop(currentA, voltageLLV float64, z Impedance, pf float64) float64 {
	if voltageLLV <= 0 {
		return 0
	}
	pf = math.Max(0, math.Min(1, pf))
	sinPhi := math.Sqrt(math.Max(0, 1-pf*pf))
	return math.Sqrt(3) * currentA * (z.R*pf + z.X*sinPhi) / voltageLLV * 100
}

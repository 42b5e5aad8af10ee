package nec

import "github.com/gridwright/oneline/pkg/tables"

// DefaultAmbientC is assumed when a cable run does not specify an ambient
// temperature.
const DefaultAmbientC = 30.0

// rooftopAdderC is added to the ambient temperature when the raceway runs
// within 12 inches of a rooftop (310.15(B)(2) style adder).
const rooftopAdderC = 17.0

// ambientStep is one step of the piecewise ambient-correction curve: the
// factor applies up to and including Limit degrees C.
type ambientStep struct {
	LimitC float64
	Factor float64
}

var ambientCurve60 = []ambientStep{{30, 1.00}, {35, 0.88}, {40, 0.82}, {45, 0.71}}
var ambientCurve75 = []ambientStep{{30, 1.00}, {35, 0.94}, {40, 0.88}, {45, 0.82}}
var ambientCurve90 = []ambientStep{{30, 1.00}, {35, 0.96}, {40, 0.91}, {45, 0.87}}

// AmbientCorrectionFactor returns the ampacity correction for the effective
// ambient temperature. ambientC of zero-value nil pointer semantics is
// handled by the caller passing DefaultAmbientC; rooftop runs within 12
// inches add 17 C before the curve lookup. Distinct curves apply per
// temperature column. Ambients beyond the curve use its last step.
func AmbientCorrectionFactor(tempColumnC int, ambientC float64, rooftopHeightIn *float64) float64 {
	ambient := ambientC
	if rooftopHeightIn != nil && *rooftopHeightIn <= 12 {
		ambient += rooftopAdderC
	}

	var curve []ambientStep
	switch {
	case tempColumnC <= 60:
		curve = ambientCurve60
	case tempColumnC <= 75:
		curve = ambientCurve75
	default:
		curve = ambientCurve90
	}

	factor := curve[len(curve)-1].Factor
	for _, step := range curve {
		if ambient <= step.LimitC {
			factor = step.Factor
			break
		}
	}
	return factor
}

// BundlingFactor returns the adjustment for the count of current-carrying
// conductors sharing a raceway (310.15(C)(1) step function).
func BundlingFactor(ccc int) float64 {
	switch {
	case ccc <= 3:
		return 1.0
	case ccc <= 6:
		return 0.8
	case ccc <= 9:
		return 0.7
	default:
		return 0.5
	}
}

// AmpacityParams describes one conductor run for derating.
type AmpacityParams struct {
	SizeAWG         string
	Material        string
	Insulation      string
	TempRatingC     int
	AmbientC        *float64 // nil means DefaultAmbientC
	RooftopHeightIn *float64
	CCC             int
	TerminalTempC   int // zero defaults to 75
	ParallelSets    int
}

// AdjustedAmpacity derates the base table ampacity for ambient temperature
// and conductor bundling, caps the result at the terminal-temperature-column
// ampacity, and multiplies by the parallel-set count.
func (e *Engine) AdjustedAmpacity(p AmpacityParams) (float64, error) {
	base, err := e.tables.BaseAmpacity(p.Material, p.Insulation, p.TempRatingC, p.SizeAWG)
	if err != nil {
		return 0, err
	}

	ambient := DefaultAmbientC
	if p.AmbientC != nil {
		ambient = *p.AmbientC
	}
	amb := AmbientCorrectionFactor(tables.TemperatureColumn(p.TempRatingC), ambient, p.RooftopHeightIn)
	bundling := BundlingFactor(p.CCC)

	terminalLimit, err := e.tables.BaseAmpacity(p.Material, p.Insulation, p.TerminalTempC, p.SizeAWG)
	if err != nil {
		return 0, err
	}

	adjusted := min(base*amb*bundling, terminalLimit)

	sets := p.ParallelSets
	if sets < 1 {
		sets = 1
	}
	return adjusted * float64(sets), nil
}

package analysis

import (
	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
)

// RunOutput is the flag-driven result object: one entry per enabled
// analysis.
type RunOutput struct {
	Load         map[string]LoadResult `json:"load,omitempty"`
	VoltageDrop  *VoltageDropResults   `json:"voltage_drop,omitempty"`
	ShortCircuit []FaultResult         `json:"short_circuit,omitempty"`
}

// Run executes the analyses enabled by the graph's analysis flags. A
// non-positive pf uses DefaultEdgePowerFactor for the voltage-drop pass.
// Voltage drop consumes the load pass's currents, so enabling voltage_drop
// runs the load calculation even when its own flag is off; only the flagged
// results are returned.
func Run(g *model.Graph, engine *nec.Engine, pf float64) *RunOutput {
	out := &RunOutput{}

	var loads map[string]LoadResult
	if g.AnalysisFlags.Load || g.AnalysisFlags.VoltageDrop {
		loads = RunLoadCalc(g)
	}
	if g.AnalysisFlags.Load {
		out.Load = loads
	}
	if g.AnalysisFlags.VoltageDrop {
		vd := RunVoltageDrop(g, engine, loads, pf)
		out.VoltageDrop = &vd
	}
	if g.AnalysisFlags.ShortCircuit {
		out.ShortCircuit = RunShortCircuit(g, engine)
	}
	return out
}

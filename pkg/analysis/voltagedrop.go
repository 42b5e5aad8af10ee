package analysis

import (
	"math"

	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
)

// DefaultEdgePowerFactor is assumed by the flag-driven voltage-drop runner
// when no configuration is supplied.
const DefaultEdgePowerFactor = 0.95

// EdgeDrop is the voltage drop across one edge. DropV and Percent are nil
// when the edge lacks the cable, current, or voltage data to compute them.
type EdgeDrop struct {
	Index   int      `json:"index"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	DropV   *float64 `json:"V_drop"`
	Percent *float64 `json:"pct"`
}

// PathDrop is the worst-case cumulative voltage drop from any source to a
// node.
type PathDrop struct {
	NodeID  string  `json:"node_id"`
	DropV   float64 `json:"V_drop"`
	Percent float64 `json:"pct"`
}

// VoltageDropResults carries both views of the voltage-drop pass.
type VoltageDropResults struct {
	PerEdge []EdgeDrop          `json:"per_edge"`
	PerPath map[string]PathDrop `json:"per_path"`
}

// RunVoltageDrop computes per-edge drops from each edge's downstream load
// current and accumulates worst-case per-path totals.
//
// Single-phase runs use 2 x I x (R cos + X sin) against the line-to-neutral
// voltage; three-phase runs use sqrt(3) x the same term against
// line-to-line. Per-path totals take the maximum over incoming paths, since
// multiple incoming feeds model alternate paths rather than parallel
// sources.
func RunVoltageDrop(g *model.Graph, engine *nec.Engine, loads map[string]LoadResult, pf float64) VoltageDropResults {
	if pf <= 0 {
		pf = DefaultEdgePowerFactor
	}
	pf = math.Min(pf, 1)
	sinPhi := math.Sqrt(math.Max(0, 1-pf*pf))
	nodes := g.NodeMap()

	perEdge := make([]EdgeDrop, 0, len(g.Edges))
	for i := range g.Edges {
		edge := &g.Edges[i]
		drop := EdgeDrop{Index: i, From: edge.From, To: edge.To}

		cable := edge.Cable
		downstream := nodes[edge.To]
		current, hasCurrent := edgeCurrent(edge, loads)
		if cable == nil || cable.LengthFt == nil || downstream == nil || !hasCurrent {
			perEdge = append(perEdge, drop)
			continue
		}

		z, err := engine.ConductorImpedance(cable.Conductor, cable.SizeAWG, *cable.LengthFt, cable.Installation, cable.Sets())
		if err != nil {
			// Unknown conductor data: this edge's drop stays unknown, the
			// rest of the pass continues.
			perEdge = append(perEdge, drop)
			continue
		}

		impedanceDrop := current * (z.R*pf + z.X*sinPhi)
		nominal := downstream.OperatingVoltage()

		var voltageDrop float64
		if downstream.PhaseCount() == 1 {
			voltageDrop = 2 * impedanceDrop
			if nominal > 0 {
				nominal /= math.Sqrt(3)
			}
		} else {
			voltageDrop = math.Sqrt(3) * impedanceDrop
		}

		drop.DropV = &voltageDrop
		if nominal > 0 {
			pct := voltageDrop / nominal * 100
			drop.Percent = &pct
		}
		perEdge = append(perEdge, drop)
	}

	return VoltageDropResults{
		PerEdge: perEdge,
		PerPath: accumulatePaths(g, perEdge),
	}
}

func edgeCurrent(edge *model.Edge, loads map[string]LoadResult) (float64, bool) {
	downstream, ok := loads[edge.To]
	if !ok || downstream.CurrentA == nil {
		return 0, false
	}
	return *downstream.CurrentA, true
}

// accumulatePaths memoizes the worst-case cumulative drop to each node over
// its incoming edges. Source nodes (no incoming edges) anchor at zero.
func accumulatePaths(g *model.Graph, perEdge []EdgeDrop) map[string]PathDrop {
	incoming := make(map[string][]int)
	for i := range g.Edges {
		incoming[g.Edges[i].To] = append(incoming[g.Edges[i].To], i)
	}

	memo := make(map[string]PathDrop, len(g.Nodes))
	visiting := make(map[string]bool)

	var accumulate func(nodeID string) PathDrop
	accumulate = func(nodeID string) PathDrop {
		if cached, ok := memo[nodeID]; ok {
			return cached
		}
		// A cycle would recurse forever; break it at the re-entry point.
		// The validator reports the cycle itself.
		if visiting[nodeID] {
			return PathDrop{NodeID: nodeID}
		}
		visiting[nodeID] = true
		defer delete(visiting, nodeID)

		result := PathDrop{NodeID: nodeID}
		for _, edgeIdx := range incoming[nodeID] {
			edge := perEdge[edgeIdx]
			upstream := accumulate(edge.From)
			totalDrop := upstream.DropV + derefOrZero(edge.DropV)
			totalPct := upstream.Percent + derefOrZero(edge.Percent)
			if totalDrop > result.DropV {
				result.DropV = totalDrop
				result.Percent = totalPct
			}
		}
		memo[nodeID] = result
		return result
	}

	for i := range g.Nodes {
		accumulate(g.Nodes[i].ID)
	}
	return memo
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Record implements Row.
func (d EdgeDrop) Record() map[string]any {
	return map[string]any{
		"from":   d.From,
		"to":     d.To,
		"V_drop": d.DropV,
		"pct":    d.Percent,
	}
}

// Record implements Row.
func (d PathDrop) Record() map[string]any {
	return map[string]any{
		"node_id": d.NodeID,
		"V_drop":  d.DropV,
		"pct":     d.Percent,
	}
}

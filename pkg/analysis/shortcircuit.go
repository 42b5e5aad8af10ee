package analysis

import (
	"math"

	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
)

// Short-circuit result methods.
const (
	// MethodImpedance marks results from Thevenin impedance accumulation.
	MethodImpedance = "impedance"
	// MethodStub marks the flat broadcast fallback used when no per-node
	// impedance seed exists anywhere in the graph.
	MethodStub = "stub"
)

// FaultResult is the estimated available fault current at one bus.
type FaultResult struct {
	NodeID           string   `json:"node_id"`
	AvailableFaultKA float64  `json:"available_fault_kA"`
	ZThorOhm         *float64 `json:"Z_th_ohm"`
	Method           string   `json:"method"`
}

// RunShortCircuit estimates available fault current per bus.
//
// Primary method: seed every node carrying a known available fault current
// with Z = V / (sqrt(3) I_fault), then breadth-first propagate downstream,
// adding each traversed cable's series impedance; the fault current at a
// node is V / (sqrt(3) |Z|). Nodes unreachable from any seed get no result.
//
// When no node carries a seed but the project declares a service fault
// current, the single figure is broadcast to every node unchanged and the
// rows are labelled with MethodStub.
func RunShortCircuit(g *model.Graph, engine *nec.Engine) []FaultResult {
	seeds := seedImpedances(g)
	if len(seeds) == 0 {
		return broadcastServiceFault(g)
	}

	children := make(map[string][]*model.Edge)
	for i := range g.Edges {
		children[g.Edges[i].From] = append(children[g.Edges[i].From], &g.Edges[i])
	}

	zMap := seeds
	queue := make([]string, 0, len(zMap))
	for id := range zMap {
		queue = append(queue, id)
	}
	seen := make(map[[2]string]bool)

	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]
		parentZ, ok := zMap[parentID]
		if !ok {
			continue
		}
		for _, edge := range children[parentID] {
			key := [2]string{edge.From, edge.To}
			if seen[key] {
				continue
			}
			seen[key] = true
			zMap[edge.To] = parentZ.Add(edgeImpedance(edge, engine))
			queue = append(queue, edge.To)
		}
	}

	results := make([]FaultResult, 0, len(zMap))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		z, ok := zMap[node.ID]
		if !ok {
			continue
		}
		voltage := node.OperatingVoltage()
		magnitude := z.Magnitude()
		if voltage <= 0 || magnitude <= 0 {
			continue
		}
		faultKA := voltage / (math.Sqrt(3) * magnitude) / 1000
		zOhm := magnitude
		results = append(results, FaultResult{
			NodeID:           node.ID,
			AvailableFaultKA: faultKA,
			ZThorOhm:         &zOhm,
			Method:           MethodImpedance,
		})
	}
	return results
}

// seedImpedances derives the starting Thevenin impedance for every node
// with a declared available fault current and a known voltage.
func seedImpedances(g *model.Graph) map[string]nec.Impedance {
	seeds := make(map[string]nec.Impedance)
	for i := range g.Nodes {
		node := &g.Nodes[i]
		if node.AvailableFaultKA == nil {
			continue
		}
		voltage := node.OperatingVoltage()
		if voltage <= 0 {
			continue
		}
		faultA := *node.AvailableFaultKA * 1000
		seeds[node.ID] = nec.Impedance{R: voltage / (math.Sqrt(3) * faultA)}
	}
	return seeds
}

// edgeImpedance returns the series impedance contributed by an edge's
// cable, or zero when the edge carries no usable cable data.
func edgeImpedance(edge *model.Edge, engine *nec.Engine) nec.Impedance {
	cable := edge.Cable
	if cable == nil || cable.LengthFt == nil || cable.SizeAWG == "" {
		return nec.Impedance{}
	}
	z, err := engine.ConductorImpedance(cable.Conductor, cable.SizeAWG, *cable.LengthFt, cable.Installation, cable.Sets())
	if err != nil {
		return nec.Impedance{}
	}
	return z
}

func broadcastServiceFault(g *model.Graph) []FaultResult {
	if g.ShortCircuit == nil || g.ShortCircuit.ServiceAvailableFaultKA == nil {
		return nil
	}
	fault := *g.ShortCircuit.ServiceAvailableFaultKA
	results := make([]FaultResult, 0, len(g.Nodes))
	for i := range g.Nodes {
		results = append(results, FaultResult{
			NodeID:           g.Nodes[i].ID,
			AvailableFaultKA: fault,
			Method:           MethodStub,
		})
	}
	return results
}

// Record implements Row.
func (r FaultResult) Record() map[string]any {
	return map[string]any{
		"bus":                r.NodeID,
		"available_fault_kA": r.AvailableFaultKA,
		"Z_th_ohm":           r.ZThorOhm,
		"method":             r.Method,
	}
}

package analysis

import (
	"math"
	"strings"

	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/topo"
)

// LoadResult is the per-node outcome of the load calculation. Current and
// margin are nil when the node's voltage or rating is unknown.
type LoadResult struct {
	NodeID   string   `json:"node_id"`
	KVATotal float64  `json:"kVA_total"`
	CurrentA *float64 `json:"I_A"`
	MarginA  *float64 `json:"margin_A"`
}

// RunLoadCalc aggregates demand toward the sources and derives per-node
// current and capacity margin.
//
// Each node's base demand comes from its load record; panel-schedule
// entries are assigned to the first child whose id appears (case
// insensitive) in the entry's description or circuit text, and unmatched
// entries accrue to the panel itself. Aggregation is a reverse-topological
// roll-up, so a cyclic graph degrades to local values for the nodes on the
// cycle.
func RunLoadCalc(g *model.Graph) map[string]LoadResult {
	topology := topo.New(g)

	base := make(map[string]float64, len(g.Nodes))
	for i := range g.Nodes {
		base[g.Nodes[i].ID] = g.Nodes[i].BaseLoadKVA()
	}

	for i := range g.PanelSchedules {
		schedule := &g.PanelSchedules[i]
		children := topology.Children(schedule.PanelID)
		for j := range schedule.Entries {
			entry := &schedule.Entries[j]
			value := entry.KVAEquivalent()
			if value == 0 {
				continue
			}
			child := matchEntryToChild(entry, children)
			if child != "" {
				base[child] += value
			} else {
				base[schedule.PanelID] += value
			}
		}
	}

	aggregated := topology.RollUp(base)

	results := make(map[string]LoadResult, len(g.Nodes))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		kva := aggregated[node.ID]
		result := LoadResult{NodeID: node.ID, KVATotal: kva}

		if voltage, ok := node.VoltageForCurrent(); ok {
			var current float64
			if node.PhaseCount() == 1 {
				current = kva * 1000 / voltage
			} else {
				current = kva * 1000 / (math.Sqrt(3) * voltage)
			}
			result.CurrentA = &current
			if node.RatingA != nil {
				margin := *node.RatingA - current
				result.MarginA = &margin
			}
		}
		results[node.ID] = result
	}
	return results
}

// matchEntryToChild returns the first child id found as a substring of the
// entry's description or circuit text. The match is heuristic and
// order-dependent; an explicit child reference field would be stronger, but
// the input format only carries free text.
func matchEntryToChild(entry *model.PanelEntry, children []string) string {
	desc := strings.ToUpper(entry.Desc)
	ckt := strings.ToUpper(entry.Ckt)
	for _, child := range children {
		token := strings.ToUpper(child)
		if token == "" {
			continue
		}
		if strings.Contains(desc, token) || strings.Contains(ckt, token) {
			return child
		}
	}
	return ""
}

// Currents extracts the known per-node currents from load results, for the
// passes that consume them.
func Currents(results map[string]LoadResult) map[string]float64 {
	currents := make(map[string]float64, len(results))
	for id, result := range results {
		if result.CurrentA != nil {
			currents[id] = *result.CurrentA
		}
	}
	return currents
}

// Record implements Row.
func (r LoadResult) Record() map[string]any {
	return map[string]any{
		"node_id":   r.NodeID,
		"kVA_total": r.KVATotal,
		"I_A":       r.CurrentA,
		"margin_A":  r.MarginA,
	}
}

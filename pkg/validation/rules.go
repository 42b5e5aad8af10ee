package validation

import (
	"fmt"
	"math"

	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/tables"
	"github.com/gridwright/oneline/pkg/topo"
)

// voltageTolerance is the relative difference beyond which two connected
// nodes' voltages are considered mismatched.
const voltageTolerance = 0.05

// Rule inspects the full graph and returns zero or more issues.
type Rule interface {
	Name() string
	Check(g *model.Graph) []Issue
}

// Pipeline runs a fixed ordered list of rules. Every rule always runs; no
// rule short-circuits the others.
type Pipeline struct {
	rules []Rule
}

// NewPipeline returns the standard rule pipeline in its documented order.
func NewPipeline(provider *tables.Provider) *Pipeline {
	return &Pipeline{rules: []Rule{
		topologyRule{},
		voltagePhaseRule{},
		panelProtectionRule{},
		ampacityRule{provider: provider},
		coverageRule{},
	}}
}

// Validate runs every rule against the graph and returns the flat,
// rule-ordered issue list.
func (p *Pipeline) Validate(g *model.Graph) []Issue {
	issues := make([]Issue, 0)
	for _, rule := range p.rules {
		issues = append(issues, rule.Check(g)...)
	}
	return issues
}

// topologyRule checks edge referential integrity and acyclicity.
type topologyRule struct{}

func (topologyRule) Name() string { return "topology" }

func (topologyRule) Check(g *model.Graph) []Issue {
	var issues []Issue
	nodeIDs := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		nodeIDs[g.Nodes[i].ID] = true
	}

	for i := range g.Edges {
		edge := &g.Edges[i]
		if !nodeIDs[edge.From] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeUnknownFrom,
				Path:     fmt.Sprintf("edges[%d].from", i),
				Message:  fmt.Sprintf("edge references unknown node %s", edge.From),
			})
		}
		if !nodeIDs[edge.To] {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeUnknownTo,
				Path:     fmt.Sprintf("edges[%d].to", i),
				Message:  fmt.Sprintf("edge references unknown node %s", edge.To),
			})
		}
	}

	if topo.New(g).HasCycle() {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeCycle,
			Path:     "edges",
			Message:  "cycle detected in feeder topology",
		})
	}
	return issues
}

// voltagePhaseRule checks voltage and phase compatibility across each edge.
type voltagePhaseRule struct{}

func (voltagePhaseRule) Name() string { return "voltage_phase" }

func (voltagePhaseRule) Check(g *model.Graph) []Issue {
	var issues []Issue
	nodes := g.NodeMap()

	for i := range g.Edges {
		edge := &g.Edges[i]
		upstream := nodes[edge.From]
		downstream := nodes[edge.To]
		if upstream == nil || downstream == nil {
			continue
		}

		if upstream.VoltageLLV != nil && downstream.VoltageLLV != nil {
			up, down := *upstream.VoltageLLV, *downstream.VoltageLLV
			if relativeDiff(up, down) > voltageTolerance {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Code:     CodeVoltageMismatch,
					Path:     fmt.Sprintf("edges[%d]", i),
					Message: fmt.Sprintf("voltage mismatch between %s (%g V) and %s (%g V)",
						edge.From, up, edge.To, down),
				})
			}
		}

		if upstream.Phases != "" && downstream.Phases != "" {
			if !phaseSubset(downstream.Phases, upstream.Phases) {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     CodePhaseIncompatible,
					Path:     fmt.Sprintf("edges[%d]", i),
					Message: fmt.Sprintf("downstream phases %s not available at upstream %s",
						downstream.Phases, upstream.Phases),
				})
			}
		}
	}
	return issues
}

func relativeDiff(a, b float64) float64 {
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return 0
	}
	return math.Abs(a-b) / larger
}

func phaseSubset(sub, super string) bool {
	available := make(map[rune]bool, len(super))
	for _, phase := range super {
		available[phase] = true
	}
	for _, phase := range sub {
		if !available[phase] {
			return false
		}
	}
	return true
}

// panelProtectionRule checks feeders into panels for upstream OCPDs: a
// missing OCPD is a warning for panels with a main, an error for MLO
// panels.
type panelProtectionRule struct{}

func (panelProtectionRule) Name() string { return "panel_protection" }

func (panelProtectionRule) Check(g *model.Graph) []Issue {
	var issues []Issue
	incoming := make(map[string][]int)
	for i := range g.Edges {
		incoming[g.Edges[i].To] = append(incoming[g.Edges[i].To], i)
	}

	for i := range g.Nodes {
		node := &g.Nodes[i]
		if node.Type != model.NodePanel {
			continue
		}
		for _, edgeIdx := range incoming[node.ID] {
			if g.Edges[edgeIdx].OCPD != nil {
				continue
			}
			if node.IsMLO() {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     CodeMLORequiresOCPD,
					Path:     fmt.Sprintf("edges[%d].ocpd", edgeIdx),
					Message:  fmt.Sprintf("panel %s is MLO but feeder lacks OCPD", node.ID),
				})
			} else {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Code:     CodeMissingOCPD,
					Path:     fmt.Sprintf("edges[%d].ocpd", edgeIdx),
					Message:  fmt.Sprintf("panel %s is not MLO; feeder should include OCPD", node.ID),
				})
			}
		}
	}
	return issues
}

// ampacityRule compares table ampacity times parallel sets against the
// OCPD rating on each protected edge.
type ampacityRule struct {
	provider *tables.Provider
}

func (ampacityRule) Name() string { return "ampacity" }

func (r ampacityRule) Check(g *model.Graph) []Issue {
	var issues []Issue
	for i := range g.Edges {
		edge := &g.Edges[i]
		if edge.OCPD == nil || edge.Cable == nil {
			continue
		}
		cable := edge.Cable
		tempC := cable.TempRatingC
		if tempC == 0 {
			tempC = 75
		}
		ampacity, err := r.provider.BaseAmpacity(cable.Conductor, cable.Insulation, tempC, cable.SizeAWG)
		if err != nil {
			// Unknown sizes are covered by the lookup errors surfaced in
			// analysis, not duplicated here.
			continue
		}
		effective := ampacity * float64(cable.Sets())
		if edge.OCPD.RatingA > effective {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeAmpacityBelowOCPD,
				Path:     fmt.Sprintf("edges[%d].cable.size_awg", i),
				Message: fmt.Sprintf("feeder ampacity %gA < OCPD rating %gA",
					effective, edge.OCPD.RatingA),
			})
		}
	}
	return issues
}

// coverageRule checks that enabled analyses have the input they need.
type coverageRule struct{}

func (coverageRule) Name() string { return "coverage" }

func (coverageRule) Check(g *model.Graph) []Issue {
	var issues []Issue

	if g.AnalysisFlags.ShortCircuit {
		missing := g.ShortCircuit == nil || g.ShortCircuit.ServiceAvailableFaultKA == nil
		if missing {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeShortCircuitInput,
				Path:     "short_circuit.service_available_fault_kA",
				Message:  "short-circuit analysis enabled but service fault current missing",
			})
		}
	}

	if g.AnalysisFlags.Load {
		hasEntries := false
		for i := range g.PanelSchedules {
			if len(g.PanelSchedules[i].Entries) > 0 {
				hasEntries = true
				break
			}
		}
		hasNodeLoads := false
		for i := range g.Nodes {
			if g.Nodes[i].HasLoadData() {
				hasNodeLoads = true
				break
			}
		}
		if !hasEntries && !hasNodeLoads {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeLoadInputIncomplete,
				Path:     "panel_schedules",
				Message:  "load analysis enabled but no panel schedules or node loads provided",
			})
		}
	}
	return issues
}

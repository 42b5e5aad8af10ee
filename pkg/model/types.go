// Package model defines the typed project-graph representation: nodes,
// edges with optional overcurrent device and cable attributes, panel
// schedules, and project-level analysis context.
//
// A Graph is constructed once per analysis invocation from validated input
// and treated as immutable for the duration of the pass.
package model

// NodeType enumerates the equipment classes a node may represent.
type NodeType string

const (
	NodeUtilityService NodeType = "utility_service"
	NodeTransformerDry NodeType = "xfmr_dry"
	NodeTransformerOil NodeType = "xfmr_oil"
	NodeSwitchboard    NodeType = "switchboard"
	NodeMST            NodeType = "mst"
	NodePanel          NodeType = "panel"
	NodeDisconnect     NodeType = "disconnect"
	NodeMCC            NodeType = "mcc"
	NodeLoad           NodeType = "load"
)

// OCPDType enumerates overcurrent protective device kinds.
type OCPDType string

const (
	OCPDBreaker OCPDType = "breaker"
	OCPDFuse    OCPDType = "fuse"
	OCPDSwitch  OCPDType = "switch"
)

// OCPD is an overcurrent protective device attached to an edge.
type OCPD struct {
	Type                 OCPDType `json:"type" validate:"required,oneof=breaker fuse switch"`
	RatingA              float64  `json:"rating_A" validate:"required,gt=0"`
	InterruptingRatingKA *float64 `json:"interrupting_rating_kA,omitempty" validate:"omitempty,gt=0"`
}

// Cable describes the conductor run on an edge. Installation, insulation,
// temperature rating, and set count receive standard defaults when the input
// omits them.
type Cable struct {
	Conductor          string   `json:"conductor" validate:"required"`
	SizeAWG            string   `json:"size_awg" validate:"required"`
	QtyPerPhase        int      `json:"qty_per_phase,omitempty" validate:"omitempty,min=1"`
	Installation       string   `json:"installation,omitempty"`
	Insulation         string   `json:"insulation,omitempty"`
	TempRatingC        int      `json:"temp_rating_C,omitempty" validate:"omitempty,oneof=60 75 90"`
	ConduitTradeSizeIn *float64 `json:"conduit_trade_size_in,omitempty" validate:"omitempty,gt=0"`
	EGCAWG             *string  `json:"egc_awg,omitempty"`
	LengthFt           *float64 `json:"length_ft,omitempty" validate:"omitempty,gte=0"`
	NeutralCountsAsCCC bool     `json:"neutral_counts_as_ccc,omitempty"`
	RooftopHeightIn    *float64 `json:"rooftop_height_in,omitempty" validate:"omitempty,gte=0"`
	AmbientC           *float64 `json:"ambient_C,omitempty"`
	IsBranch           bool     `json:"is_branch,omitempty"`
	IsFeeder           bool     `json:"is_feeder,omitempty"`
	IsTap              bool     `json:"is_tap,omitempty"`
	TapRule            *string  `json:"tap_rule,omitempty"`
	TapTerminationOCPD *bool    `json:"tap_termination_has_ocpd,omitempty"`
}

// Sets returns the parallel-set count, never less than 1.
func (c *Cable) Sets() int {
	if c.QtyPerPhase < 1 {
		return 1
	}
	return c.QtyPerPhase
}

// CCC returns the current-carrying-conductor count for the run: three per
// set, four when the neutral counts.
func (c *Cable) CCC() int {
	per := 3
	if c.NeutralCountsAsCCC {
		per = 4
	}
	return c.Sets() * per
}

// Edge is an ordered (from, to) pair between node ids, optionally carrying
// an OCPD and a cable. Referential integrity is checked by the validator,
// not enforced by construction.
type Edge struct {
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
	OCPD  *OCPD  `json:"ocpd,omitempty"`
	Cable *Cable `json:"cable,omitempty"`
}

// Transformer holds the transformer sub-record of a node.
type Transformer struct {
	KVA     *float64 `json:"kVA,omitempty" validate:"omitempty,gt=0"`
	ZPct    *float64 `json:"Z_pct,omitempty" validate:"omitempty,gt=0"`
	XRRatio *float64 `json:"XR_ratio,omitempty" validate:"omitempty,gt=0"`
}

// LoadSpec holds the load sub-record of a node: explicit kVA, or kW with a
// power factor, plus a continuous-duty flag.
type LoadSpec struct {
	KVA         *float64 `json:"kVA,omitempty" validate:"omitempty,gte=0"`
	KW          *float64 `json:"kW,omitempty" validate:"omitempty,gte=0"`
	PowerFactor *float64 `json:"pf,omitempty" validate:"omitempty,gt=0,lte=1"`
	Continuous  bool     `json:"continuous,omitempty"`
}

// Node is one bus in the distribution graph.
type Node struct {
	ID               string       `json:"id" validate:"required"`
	Type             NodeType     `json:"type" validate:"required,oneof=utility_service xfmr_dry xfmr_oil switchboard mst panel disconnect mcc load"`
	Name             *string      `json:"name,omitempty"`
	VoltageLLV       *float64     `json:"voltage_ll_V,omitempty" validate:"omitempty,gt=0"`
	Phases           string       `json:"phases,omitempty" validate:"omitempty,oneof=A B C AB BC CA ABC"`
	RatingA          *float64     `json:"rating_A,omitempty" validate:"omitempty,gt=0"`
	MLO              *bool        `json:"mlo,omitempty"`
	Transformer      *Transformer `json:"xfmr,omitempty"`
	Load             *LoadSpec    `json:"load,omitempty"`
	PriV             *float64     `json:"pri_V,omitempty" validate:"omitempty,gt=0"`
	SecV             *float64     `json:"sec_V,omitempty" validate:"omitempty,gt=0"`
	AvailableFaultKA *float64     `json:"available_fault_kA,omitempty" validate:"omitempty,gt=0"`
	SCCRkA           *float64     `json:"sccr_kA,omitempty" validate:"omitempty,gt=0"`
}

// PanelEntry is one circuit row of a panel schedule.
type PanelEntry struct {
	Ckt         string   `json:"ckt" validate:"required"`
	Desc        string   `json:"desc"`
	KVA         *float64 `json:"kVA,omitempty" validate:"omitempty,gte=0"`
	KW          *float64 `json:"kW,omitempty" validate:"omitempty,gte=0"`
	PowerFactor *float64 `json:"pf,omitempty" validate:"omitempty,gt=0,lte=1"`
	Continuous  bool     `json:"continuous,omitempty"`
	Phases      string   `json:"phases,omitempty" validate:"omitempty,oneof=A B C AB BC CA ABC"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
}

// PanelSchedule ties a list of circuit entries to one panel node.
type PanelSchedule struct {
	PanelID string       `json:"panel_id" validate:"required"`
	Entries []PanelEntry `json:"entries" validate:"dive"`
}

// CodeContext records the governing code year and jurisdiction.
type CodeContext struct {
	NECYear      int      `json:"nec_year" validate:"required"`
	Jurisdiction string   `json:"jurisdiction"`
	Amendments   []string `json:"amendments,omitempty"`
}

// ProjectContext names the project and its code context.
type ProjectContext struct {
	Name string      `json:"name" validate:"required"`
	Code CodeContext `json:"code"`
}

// AnalysisFlags enables each analysis pass independently.
type AnalysisFlags struct {
	Load         bool `json:"load"`
	VoltageDrop  bool `json:"voltage_drop"`
	ShortCircuit bool `json:"short_circuit"`
}

// ShortCircuitContext carries the utility-point fault data.
type ShortCircuitContext struct {
	ServiceAvailableFaultKA *float64 `json:"service_available_fault_kA,omitempty" validate:"omitempty,gt=0"`
}

// Graph is the complete project document: context, analysis flags, nodes,
// edges, and panel schedules.
type Graph struct {
	SchemaVersion  string               `json:"schema_version,omitempty"`
	Project        ProjectContext       `json:"project"`
	AnalysisFlags  AnalysisFlags        `json:"analysis_flags"`
	Assumptions    []map[string]any     `json:"assumptions,omitempty"`
	Sources        []map[string]any     `json:"sources,omitempty"`
	Nodes          []Node               `json:"nodes" validate:"required,min=1,dive"`
	Edges          []Edge               `json:"edges" validate:"dive"`
	PanelSchedules []PanelSchedule      `json:"panel_schedules,omitempty" validate:"dive"`
	ShortCircuit   *ShortCircuitContext `json:"short_circuit,omitempty"`
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// NodeMap returns an id-keyed view of the graph's nodes.
func (g *Graph) NodeMap() map[string]*Node {
	m := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		m[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return m
}

// ScheduleFor returns the panel schedule attached to a node id, or nil.
func (g *Graph) ScheduleFor(panelID string) *PanelSchedule {
	for i := range g.PanelSchedules {
		if g.PanelSchedules[i].PanelID == panelID {
			return &g.PanelSchedules[i]
		}
	}
	return nil
}

package analysis

import (
	"math"
	"time"

	"github.com/gridwright/oneline/pkg/logging"
	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
	"github.com/gridwright/oneline/pkg/topo"
)

// Result table names, in output order.
const (
	TablePanelSummary      = "panel_summary"
	TableEdgeChecks        = "edge_checks"
	TableVoltageDropTotals = "voltage_drop_totals"
	TableShortCircuit      = "short_circuit"
	TableTapChecks         = "tap_checks"
)

// PanelSummaryRow is the per-bus load roll-up.
type PanelSummaryRow struct {
	Bus            string   `json:"bus"`
	Type           string   `json:"type"`
	VoltageLLV     float64  `json:"V_ll"`
	RatingA        *float64 `json:"rating_A"`
	KVACont        float64  `json:"kVA_cont"`
	KVANoncont     float64  `json:"kVA_noncont"`
	KVADesign      float64  `json:"kVA_design"`
	KVATotal       float64  `json:"kVA_total"`
	IDesignA       float64  `json:"I_design_A"`
	UtilizationPct float64  `json:"utilization_pct"`
}

// EdgeCheckRow is the per-feeder conductor check: ampacity, voltage drop,
// grounding, and raceway sizing.
type EdgeCheckRow struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	SizeAWG         string  `json:"size_awg"`
	QtyPerPhase     int     `json:"qty_per_phase"`
	LengthFt        float64 `json:"length_ft"`
	AmpacityA       float64 `json:"ampacity_A"`
	LoadA           float64 `json:"load_A"`
	AmpacityMarginA float64 `json:"ampacity_margin_A"`
	VDPct           float64 `json:"vd_pct"`
	VDOK            bool    `json:"vd_ok"`
	EGCAWG          string  `json:"egc_awg"`
	MinConduitIn    float64 `json:"min_conduit_in"`
}

// VDTotalRow is the cumulative worst-case voltage drop at one bus.
type VDTotalRow struct {
	Bus        string  `json:"bus"`
	TotalVDPct float64 `json:"total_vd_pct"`
	VDTotalOK  bool    `json:"vd_total_ok"`
}

// Results bundles the named analysis tables.
type Results struct {
	PanelSummary      Table[PanelSummaryRow]
	EdgeChecks        Table[EdgeCheckRow]
	VoltageDropTotals Table[VDTotalRow]
	ShortCircuit      Table[FaultResult]
	TapChecks         Table[TapCheck]
}

// Tables returns the record view of every result table, keyed by name.
func (r *Results) Tables() map[string][]map[string]any {
	return map[string][]map[string]any{
		TablePanelSummary:      r.PanelSummary.Records(),
		TableEdgeChecks:        r.EdgeChecks.Records(),
		TableVoltageDropTotals: r.VoltageDropTotals.Records(),
		TableShortCircuit:      r.ShortCircuit.Records(),
		TableTapChecks:         r.TapChecks.Records(),
	}
}

// Analyzer runs the full table-oriented pipeline over one graph.
type Analyzer struct {
	engine *nec.Engine
	cfg    Config
	logger logging.Logger
}

// NewAnalyzer builds an Analyzer. A nil logger disables logging.
func NewAnalyzer(engine *nec.Engine, cfg Config, logger logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Analyzer{engine: engine, cfg: cfg.Normalize(), logger: logger}
}

// Analyze runs every pass and returns the named result tables. The graph is
// read-only for the duration of the call.
func (a *Analyzer) Analyze(g *model.Graph) *Results {
	start := time.Now()
	a.logger.Info("analysis started",
		logging.NodeCount(len(g.Nodes)),
		logging.EdgeCount(len(g.Edges)),
	)

	topology := topo.New(g)
	summary, currents := a.panelSummary(g, topology)
	edgeChecks, edgeDrops := a.edgeChecks(g, currents)

	results := &Results{
		PanelSummary:      Table[PanelSummaryRow]{Name: TablePanelSummary, Rows: summary},
		EdgeChecks:        Table[EdgeCheckRow]{Name: TableEdgeChecks, Rows: edgeChecks},
		VoltageDropTotals: Table[VDTotalRow]{Name: TableVoltageDropTotals, Rows: a.voltageDropTotals(g, edgeDrops)},
		ShortCircuit:      Table[FaultResult]{Name: TableShortCircuit, Rows: RunShortCircuit(g, a.engine)},
		TapChecks:         Table[TapCheck]{Name: TableTapChecks, Rows: RunTapChecks(g, a.engine, currents)},
	}

	a.logger.Info("analysis complete",
		logging.RowCount(TablePanelSummary, len(results.PanelSummary.Rows)),
		logging.RowCount(TableEdgeChecks, len(results.EdgeChecks.Rows)),
		logging.RowCount(TableShortCircuit, len(results.ShortCircuit.Rows)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return results
}

// panelSummary rolls schedule and node demand up toward the sources and
// derives the per-bus design current.
func (a *Analyzer) panelSummary(g *model.Graph, topology *topo.Topology) ([]PanelSummaryRow, map[string]float64) {
	type scheduleTotals struct{ cont, noncont float64 }

	local := make(map[string]float64, len(g.Nodes))
	totals := make(map[string]scheduleTotals, len(g.Nodes))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		st := scheduleTotals{}
		if schedule := g.ScheduleFor(node.ID); schedule != nil {
			for j := range schedule.Entries {
				entry := &schedule.Entries[j]
				kva := entryKVARaw(entry)
				if entry.Continuous {
					st.cont += kva
				} else {
					st.noncont += kva
				}
			}
		}
		totals[node.ID] = st
		local[node.ID] = st.cont*1.25 + st.noncont + node.BaseLoadKVA()
	}

	aggregated := topology.RollUp(local)

	rows := make([]PanelSummaryRow, 0, len(g.Nodes))
	currents := make(map[string]float64, len(g.Nodes))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		st := totals[node.ID]
		voltage := node.OperatingVoltage()
		total := aggregated[node.ID]

		current := 0.0
		if voltage > 0 {
			current = total * 1000 / (math.Sqrt(3) * voltage)
		}
		currents[node.ID] = current

		utilization := 0.0
		if node.RatingA != nil && *node.RatingA > 0 {
			utilization = current / *node.RatingA * 100
		}

		rows = append(rows, PanelSummaryRow{
			Bus:            node.ID,
			Type:           string(node.Type),
			VoltageLLV:     voltage,
			RatingA:        node.RatingA,
			KVACont:        st.cont,
			KVANoncont:     st.noncont,
			KVADesign:      local[node.ID],
			KVATotal:       total,
			IDesignA:       current,
			UtilizationPct: utilization,
		})
	}
	return rows, currents
}

// entryKVARaw converts a schedule entry to kVA without the continuous
// multiplier; the summary applies it to the continuous subtotal as a whole.
func entryKVARaw(entry *model.PanelEntry) float64 {
	switch {
	case entry.KVA != nil:
		return *entry.KVA
	case entry.KW != nil:
		pf := 1.0
		if entry.PowerFactor != nil && *entry.PowerFactor > 0 {
			pf = *entry.PowerFactor
		}
		return *entry.KW / pf
	}
	return 0
}

// edgeChecks sizes and checks every edge that carries a cable. Edges whose
// conductor has no table data are skipped with a warning; the rest of the
// pass continues.
func (a *Analyzer) edgeChecks(g *model.Graph, currents map[string]float64) ([]EdgeCheckRow, []EdgeDrop) {
	nodes := g.NodeMap()
	rows := make([]EdgeCheckRow, 0, len(g.Edges))
	drops := make([]EdgeDrop, len(g.Edges))

	pf := a.cfg.PowerFactor
	sinPhi := math.Sqrt(math.Max(0, 1-pf*pf))

	for i := range g.Edges {
		edge := &g.Edges[i]
		drops[i] = EdgeDrop{Index: i, From: edge.From, To: edge.To}
		cable := edge.Cable
		if cable == nil || cable.SizeAWG == "" {
			continue
		}

		params := nec.AmpacityParams{
			SizeAWG:         cable.SizeAWG,
			Material:        cable.Conductor,
			Insulation:      cable.Insulation,
			TempRatingC:     cable.TempRatingC,
			AmbientC:        cable.AmbientC,
			RooftopHeightIn: cable.RooftopHeightIn,
			CCC:             cable.CCC(),
			TerminalTempC:   cable.TempRatingC,
			ParallelSets:    cable.Sets(),
		}
		ampacity, err := a.engine.AdjustedAmpacity(params)
		if err != nil {
			a.logger.Warn("edge skipped: no table data",
				logging.Edge(edge.From, edge.To),
				logging.Err(err),
			)
			continue
		}

		loadCurrent := currents[edge.To]
		length := 0.0
		if cable.LengthFt != nil {
			length = *cable.LengthFt
		}

		vdPct := 0.0
		downstream := nodes[edge.To]
		if length > 0 && downstream != nil {
			if voltage := downstream.OperatingVoltage(); voltage > 0 {
				z, zErr := a.engine.ConductorImpedance(cable.Conductor, cable.SizeAWG, length, cable.Installation, cable.Sets())
				if zErr == nil {
					vdPct = math.Sqrt(3) * loadCurrent * (z.R*pf + z.X*sinPhi) / voltage * 100
					pct := vdPct
					drops[i].Percent = &pct
				}
			}
		}

		limit := a.cfg.FeederVDLimitPct
		if cable.IsBranch {
			limit = a.cfg.BranchVDLimitPct
		}

		// An unprotected feeder is sized as if protected at 125% of load.
		ocpdRating := loadCurrent * 1.25
		if edge.OCPD != nil {
			ocpdRating = edge.OCPD.RatingA
		}

		ninetyParams := params
		ninetyParams.TempRatingC = 90
		ninetyParams.TerminalTempC = 90
		ninetyAmpacity, err := a.engine.AdjustedAmpacity(ninetyParams)
		if err != nil {
			ninetyAmpacity = ampacity
		}
		upsizing := 1.0
		if ampacity > 0 {
			upsizing = ninetyAmpacity / ampacity
		}

		egc, err := a.engine.UpsizedEquipmentGround(ocpdRating, upsizing, cable.Conductor)
		if err != nil {
			a.logger.Warn("edge skipped: EGC sizing failed",
				logging.Edge(edge.From, edge.To),
				logging.Err(err),
			)
			continue
		}

		conduit, err := a.engine.MinimumRacewaySize([]nec.ConductorRun{
			{SizeAWG: cable.SizeAWG, Qty: cable.Sets() * 3},
			{SizeAWG: egc, Qty: cable.Sets()},
		}, a.cfg.FillFraction)
		if err != nil {
			a.logger.Warn("edge skipped: raceway sizing failed",
				logging.Edge(edge.From, edge.To),
				logging.Err(err),
			)
			continue
		}

		rows = append(rows, EdgeCheckRow{
			From:            edge.From,
			To:              edge.To,
			SizeAWG:         cable.SizeAWG,
			QtyPerPhase:     cable.Sets(),
			LengthFt:        length,
			AmpacityA:       ampacity,
			LoadA:           loadCurrent,
			AmpacityMarginA: ampacity - loadCurrent,
			VDPct:           vdPct,
			VDOK:            vdPct <= limit,
			EGCAWG:          egc,
			MinConduitIn:    conduit,
		})
	}
	return rows, drops
}

// voltageDropTotals accumulates the worst-case cumulative drop to every bus
// with a known voltage.
func (a *Analyzer) voltageDropTotals(g *model.Graph, drops []EdgeDrop) []VDTotalRow {
	perPath := accumulatePaths(g, drops)

	rows := make([]VDTotalRow, 0, len(g.Nodes))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		if node.OperatingVoltage() <= 0 {
			continue
		}
		total := perPath[node.ID].Percent
		rows = append(rows, VDTotalRow{
			Bus:        node.ID,
			TotalVDPct: total,
			VDTotalOK:  total <= a.cfg.TotalVDLimitPct,
		})
	}
	return rows
}

// Record implements Row.
func (r PanelSummaryRow) Record() map[string]any {
	return map[string]any{
		"bus":             r.Bus,
		"type":            r.Type,
		"V_ll":            r.VoltageLLV,
		"rating_A":        r.RatingA,
		"kVA_cont":        r.KVACont,
		"kVA_noncont":     r.KVANoncont,
		"kVA_design":      r.KVADesign,
		"kVA_total":       r.KVATotal,
		"I_design_A":      r.IDesignA,
		"utilization_pct": r.UtilizationPct,
	}
}

// Record implements Row.
func (r EdgeCheckRow) Record() map[string]any {
	return map[string]any{
		"from":              r.From,
		"to":                r.To,
		"size_awg":          r.SizeAWG,
		"qty_per_phase":     r.QtyPerPhase,
		"length_ft":         r.LengthFt,
		"ampacity_A":        r.AmpacityA,
		"load_A":            r.LoadA,
		"ampacity_margin_A": r.AmpacityMarginA,
		"vd_pct":            r.VDPct,
		"vd_ok":             r.VDOK,
		"egc_awg":           r.EGCAWG,
		"min_conduit_in":    r.MinConduitIn,
	}
}

// Record implements Row.
func (r VDTotalRow) Record() map[string]any {
	return map[string]any{
		"bus":          r.Bus,
		"total_vd_pct": r.TotalVDPct,
		"vd_total_ok":  r.VDTotalOK,
	}
}

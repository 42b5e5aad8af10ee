package analysis

import (
	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
)

// Tap rule length limits in feet (240.21(B) style).
const (
	tenFootLimit        = 10.0
	twentyFiveFootLimit = 25.0
)

// TapCheck is the rule evaluation for one tap edge. The combined Passes is
// true when either rule holds.
type TapCheck struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	LengthFt   float64 `json:"length_ft"`
	AmpacityA  float64 `json:"ampacity_A"`
	LoadA      float64 `json:"load_A"`
	Passes10Ft bool    `json:"passes_10ft"`
	Passes25Ft bool    `json:"passes_25ft"`
	Passes     bool    `json:"passes"`
}

// RunTapChecks evaluates the 10-foot and 25-foot feeder tap rules on every
// edge flagged as a tap.
//
// 10-foot rule: length within 10 ft, adjusted ampacity covers the
// downstream load, and the tap terminates in an OCPD. 25-foot rule: length
// within 25 ft and adjusted ampacity at least one third of the source OCPD
// rating. Both individual outcomes are always reported.
func RunTapChecks(g *model.Graph, engine *nec.Engine, currents map[string]float64) []TapCheck {
	var checks []TapCheck
	for i := range g.Edges {
		edge := &g.Edges[i]
		cable := edge.Cable
		if cable == nil || !cable.IsTap {
			continue
		}

		ampacity, err := engine.AdjustedAmpacity(nec.AmpacityParams{
			SizeAWG:         cable.SizeAWG,
			Material:        cable.Conductor,
			Insulation:      cable.Insulation,
			TempRatingC:     cable.TempRatingC,
			AmbientC:        cable.AmbientC,
			RooftopHeightIn: cable.RooftopHeightIn,
			CCC:             cable.CCC(),
			TerminalTempC:   cable.TempRatingC,
			ParallelSets:    cable.Sets(),
		})
		if err != nil {
			// No table data for this conductor; the tap cannot be checked.
			continue
		}

		length := 0.0
		if cable.LengthFt != nil {
			length = *cable.LengthFt
		}
		load := currents[edge.To]

		terminated := cable.TapTerminationOCPD != nil && *cable.TapTerminationOCPD
		tenFtOK := length <= tenFootLimit && ampacity >= load && terminated

		twentyFiveOK := false
		if length <= twentyFiveFootLimit && edge.OCPD != nil {
			twentyFiveOK = ampacity >= edge.OCPD.RatingA/3
		}

		checks = append(checks, TapCheck{
			From:       edge.From,
			To:         edge.To,
			LengthFt:   length,
			AmpacityA:  ampacity,
			LoadA:      load,
			Passes10Ft: tenFtOK,
			Passes25Ft: twentyFiveOK,
			Passes:     tenFtOK || twentyFiveOK,
		})
	}
	return checks
}

// Record implements Row.
func (c TapCheck) Record() map[string]any {
	return map[string]any{
		"from":        c.From,
		"to":          c.To,
		"length_ft":   c.LengthFt,
		"ampacity_A":  c.AmpacityA,
		"load_A":      c.LoadA,
		"passes_10ft": c.Passes10Ft,
		"passes_25ft": c.Passes25Ft,
		"passes":      c.Passes,
	}
}

package model

import "math"

// The original input format scatters voltage and load data across several
// optional fields. The accessors below replace "first present field wins"
// probing with a documented priority order.

// OperatingVoltage returns the node's line-to-line voltage: voltage_ll_V
// first, then the transformer secondary, then the primary. Zero when none is
// known.
func (n *Node) OperatingVoltage() float64 {
	for _, v := range []*float64{n.VoltageLLV, n.SecV, n.PriV} {
		if v != nil && *v > 0 {
			return *v
		}
	}
	return 0
}

// PhaseCount returns the number of phases serving the node, defaulting to 3
// when the phase set is unspecified.
func (n *Node) PhaseCount() int {
	if n.Phases == "" {
		return 3
	}
	return len(n.Phases)
}

// VoltageForCurrent returns the voltage to divide by when converting kVA to
// amperes: line-to-neutral for single-phase nodes, line-to-line otherwise.
// Returns false when no voltage is known.
func (n *Node) VoltageForCurrent() (float64, bool) {
	v := n.OperatingVoltage()
	if v <= 0 {
		return 0, false
	}
	if n.PhaseCount() == 1 {
		return v / math.Sqrt(3), true
	}
	return v, true
}

// BaseLoadKVA returns the node's own demand in kVA: explicit kVA first, else
// kW converted through the power factor, with the 1.25 continuous-duty
// multiplier applied. Zero when the node carries no load record.
func (n *Node) BaseLoadKVA() float64 {
	if n.Load == nil {
		return 0
	}
	return n.Load.KVAEquivalent()
}

// KVAEquivalent converts a load spec to kVA, applying the continuous-duty
// multiplier.
func (l *LoadSpec) KVAEquivalent() float64 {
	base := 0.0
	switch {
	case l.KVA != nil:
		base = *l.KVA
	case l.KW != nil:
		pf := 1.0
		if l.PowerFactor != nil && *l.PowerFactor > 0 {
			pf = *l.PowerFactor
		}
		base = *l.KW / pf
	}
	if l.Continuous {
		base *= 1.25
	}
	return base
}

// KVAEquivalent converts a schedule entry to kVA: explicit kVA first, else
// kW through the power factor (1.0 when absent), times 1.25 when continuous.
func (e *PanelEntry) KVAEquivalent() float64 {
	base := 0.0
	switch {
	case e.KVA != nil:
		base = *e.KVA
	case e.KW != nil:
		pf := 1.0
		if e.PowerFactor != nil && *e.PowerFactor > 0 {
			pf = *e.PowerFactor
		}
		base = *e.KW / pf
	default:
		return 0
	}
	if e.Continuous {
		base *= 1.25
	}
	return base
}

// IsMLO reports whether the node is a main-lugs-only panel.
func (n *Node) IsMLO() bool {
	return n.MLO != nil && *n.MLO
}

// HasLoadData reports whether the node carries any usable load figure.
func (n *Node) HasLoadData() bool {
	return n.Load != nil && (n.Load.KVA != nil || n.Load.KW != nil)
}

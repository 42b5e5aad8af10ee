// Package tables provides keyed access to the embedded NEC-style lookup
// tables: conductor ampacity, conductor geometry, raceway areas, grounding
// conductor sizes, and per-length impedance data.
//
// A Provider is constructed once and shared by reference; all lookups are
// read-only and safe for concurrent use.
package tables

import (
	"fmt"
	"sort"
	"strings"
)

// LookupError is returned when a requested table entry does not exist.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s table entry for %s", e.Table, e.Key)
}

// Provider exposes the embedded code tables behind normalized keys.
type Provider struct {
	ampacity    map[ampacityKey]map[string]float64
	conductorOD map[string]float64
	racewayArea map[float64]float64
	egc         []egcRow
	resistance  map[string]map[string]float64
	reactance   map[string]float64

	tradeSizes []float64 // ascending
}

// NewProvider builds a Provider over the embedded tables.
func NewProvider() *Provider {
	sizes := make([]float64, 0, len(racewayAreaData))
	for size := range racewayAreaData {
		sizes = append(sizes, size)
	}
	sort.Float64s(sizes)

	return &Provider{
		ampacity:    ampacityData,
		conductorOD: conductorODData,
		racewayArea: racewayAreaData,
		egc:         egcData,
		resistance:  resistanceData,
		reactance:   reactanceData,
		tradeSizes:  sizes,
	}
}

// NormalizeMaterial maps a conductor material spelling to CU or AL by prefix
// match ("Cu", "copper" -> CU).
func NormalizeMaterial(material string) (string, error) {
	mat := strings.ToUpper(strings.TrimSpace(material))
	switch {
	case strings.HasPrefix(mat, "CU") || strings.HasPrefix(mat, "COPPER"):
		return "CU", nil
	case strings.HasPrefix(mat, "AL"):
		return "AL", nil
	}
	return "", &LookupError{Table: "conductor material", Key: material}
}

// NormalizeInsulation maps insulation spellings to their table key, e.g.
// "THHN/THWN-2" -> "THHN".
func NormalizeInsulation(insulation string) string {
	text := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(insulation), " ", ""))
	if alias, ok := insulationAliases[text]; ok {
		return alias
	}
	return text
}

// NormalizeSize canonicalizes a conductor size spelling: strips a kcmil
// suffix and upper-cases. Returns the empty string for unrecognized input
// such as metric sizes.
func NormalizeSize(size string) string {
	s := strings.ToUpper(strings.TrimSpace(size))
	s = strings.TrimSpace(strings.TrimSuffix(s, "KCMIL"))
	if strings.HasSuffix(s, "MM2") {
		return ""
	}
	return s
}

// TemperatureColumn buckets a temperature rating into the nearest standard
// column that does not exceed it. Zero (unspecified) defaults to 75.
func TemperatureColumn(tempC int) int {
	switch {
	case tempC == 0:
		return 75
	case tempC >= 90:
		return 90
	case tempC >= 75:
		return 75
	default:
		return 60
	}
}

// BaseAmpacity returns the 310.16 base ampacity for the given conductor.
// Aluminum requests for an insulation with no AL column fall back to the
// XHHW-2 entry; this is a compatibility shim for THHN-labelled aluminum
// input, not a general fallback.
func (p *Provider) BaseAmpacity(material, insulation string, tempC int, size string) (float64, error) {
	mat, err := NormalizeMaterial(material)
	if err != nil {
		return 0, err
	}
	key := ampacityKey{
		Material:   mat,
		Insulation: NormalizeInsulation(insulation),
		TempC:      TemperatureColumn(tempC),
	}
	column, ok := p.ampacity[key]
	if !ok && mat == "AL" {
		key.Insulation = "XHHW-2"
		column, ok = p.ampacity[key]
	}
	if !ok {
		return 0, &LookupError{
			Table: "ampacity",
			Key:   fmt.Sprintf("material=%s insulation=%s temp=%d", key.Material, key.Insulation, key.TempC),
		}
	}
	amps, ok := column[NormalizeSize(size)]
	if !ok {
		return 0, &LookupError{
			Table: "ampacity",
			Key:   fmt.Sprintf("material=%s insulation=%s temp=%d size=%s", key.Material, key.Insulation, key.TempC, size),
		}
	}
	return amps, nil
}

// ConductorOD returns the outside diameter in inches for a conductor size.
func (p *Provider) ConductorOD(size string) (float64, error) {
	od, ok := p.conductorOD[NormalizeSize(size)]
	if !ok {
		return 0, &LookupError{Table: "conductor OD", Key: size}
	}
	return od, nil
}

// RacewayArea returns the internal area in square inches for an EMT trade
// size.
func (p *Provider) RacewayArea(tradeSize float64) (float64, error) {
	area, ok := p.racewayArea[tradeSize]
	if !ok {
		return 0, &LookupError{Table: "raceway area", Key: fmt.Sprintf("%g in", tradeSize)}
	}
	return area, nil
}

// TradeSizes returns the available raceway trade sizes in ascending order.
func (p *Provider) TradeSizes() []float64 {
	return p.tradeSizes
}

// EGCSize returns the equipment grounding conductor size for an OCPD rating:
// the first table row whose limit covers the rating, or the largest row when
// the rating exceeds the table.
func (p *Provider) EGCSize(ocpdRatingA float64, material string) (string, error) {
	mat, err := NormalizeMaterial(material)
	if err != nil {
		return "", err
	}
	pick := func(row egcRow) string {
		if mat == "AL" {
			return row.AlSize
		}
		return row.CuSize
	}
	for _, row := range p.egc {
		if ocpdRatingA <= row.OCPDMaxA {
			return pick(row), nil
		}
	}
	return pick(p.egc[len(p.egc)-1]), nil
}

// ResistancePerKft returns conductor resistance in ohms per 1000 ft.
func (p *Provider) ResistancePerKft(material, size string) (float64, error) {
	mat, err := NormalizeMaterial(material)
	if err != nil {
		return 0, err
	}
	r, ok := p.resistance[mat][NormalizeSize(size)]
	if !ok {
		return 0, &LookupError{Table: "resistance", Key: fmt.Sprintf("material=%s size=%s", mat, size)}
	}
	return r, nil
}

// ReactancePerKft returns raceway reactance in ohms per 1000 ft by
// installation method.
func (p *Provider) ReactancePerKft(installation string) (float64, error) {
	x, ok := p.reactance[strings.ToUpper(strings.TrimSpace(installation))]
	if !ok {
		return 0, &LookupError{Table: "reactance", Key: installation}
	}
	return x, nil
}

// SizeIndex returns the position of a conductor size in SizeOrder, or -1.
func SizeIndex(size string) int {
	normalized := NormalizeSize(size)
	for i, s := range SizeOrder {
		if s == normalized {
			return i
		}
	}
	return -1
}

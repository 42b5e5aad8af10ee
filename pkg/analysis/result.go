// Package analysis orchestrates the calculation passes over a project
// graph: load aggregation, voltage drop, short-circuit propagation, and
// feeder-tap checks, plus the table-oriented reporting pipeline.
package analysis

import "math"

// RoundDigits is the presentation precision for numeric result fields.
const RoundDigits = 3

// Row is one record of a result table, exportable as a flat field mapping.
type Row interface {
	Record() map[string]any
}

// Table is a named, ordered collection of result rows. Typed rows are the
// canonical representation; Records is a derived view, not a parallel copy.
type Table[R Row] struct {
	Name string
	Rows []R
}

// Records returns the rows as flat field maps with numeric values rounded
// for presentation.
func (t Table[R]) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := row.Record()
		for key, value := range record {
			record[key] = roundValue(value)
		}
		records = append(records, record)
	}
	return records
}

// Empty reports whether the table has no rows.
func (t Table[R]) Empty() bool {
	return len(t.Rows) == 0
}

// Round rounds a value to the presentation precision.
func Round(v float64) float64 {
	scale := math.Pow(10, RoundDigits)
	return math.Round(v*scale) / scale
}

func roundValue(v any) any {
	switch value := v.(type) {
	case float64:
		return Round(value)
	case *float64:
		if value == nil {
			return nil
		}
		return Round(*value)
	default:
		return v
	}
}

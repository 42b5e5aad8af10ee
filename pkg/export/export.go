// Package export renders analysis results and project data as files: the
// panel-schedule CSV, the one-line JSON dump, per-table result CSVs, and
// the run-metadata document. Pure formatting; no calculation happens here.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gridwright/oneline/pkg/analysis"
	"github.com/gridwright/oneline/pkg/model"
)

// PanelScheduleCSV writes every panel-schedule entry in the fixed column
// order panel_id, ckt, desc, kVA, kW, continuous.
func PanelScheduleCSV(g *model.Graph, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create panel schedule CSV: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"panel_id", "ckt", "desc", "kVA", "kW", "continuous"}); err != nil {
		return err
	}
	for i := range g.PanelSchedules {
		schedule := &g.PanelSchedules[i]
		for j := range schedule.Entries {
			entry := &schedule.Entries[j]
			record := []string{
				schedule.PanelID,
				entry.Ckt,
				entry.Desc,
				formatOptionalFloat(entry.KVA),
				formatOptionalFloat(entry.KW),
				strconv.FormatBool(entry.Continuous),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// OneLineJSON writes the nodes/edges view of the graph, the thin one-line
// diagram payload.
func OneLineJSON(g *model.Graph, path string) error {
	payload := struct {
		Nodes []model.Node `json:"nodes"`
		Edges []model.Edge `json:"edges"`
	}{Nodes: g.Nodes, Edges: g.Edges}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal one-line payload: %w", err)
	}
	return writeFile(path, data)
}

// ResultTablesCSV writes one CSV per analysis table into dir, using each
// table's canonical column order.
func ResultTablesCSV(results *analysis.Results, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := []struct {
		name    string
		columns []string
		records []map[string]any
	}{
		{analysis.TablePanelSummary,
			[]string{"bus", "type", "V_ll", "rating_A", "kVA_cont", "kVA_noncont", "kVA_design", "kVA_total", "I_design_A", "utilization_pct"},
			results.PanelSummary.Records()},
		{analysis.TableEdgeChecks,
			[]string{"from", "to", "size_awg", "qty_per_phase", "length_ft", "ampacity_A", "load_A", "ampacity_margin_A", "vd_pct", "vd_ok", "egc_awg", "min_conduit_in"},
			results.EdgeChecks.Records()},
		{analysis.TableVoltageDropTotals,
			[]string{"bus", "total_vd_pct", "vd_total_ok"},
			results.VoltageDropTotals.Records()},
		{analysis.TableShortCircuit,
			[]string{"bus", "available_fault_kA", "Z_th_ohm", "method"},
			results.ShortCircuit.Records()},
		{analysis.TableTapChecks,
			[]string{"from", "to", "length_ft", "ampacity_A", "load_A", "passes_10ft", "passes_25ft", "passes"},
			results.TapChecks.Records()},
	}

	for _, table := range files {
		path := filepath.Join(dir, table.name+".csv")
		if err := writeRecordsCSV(path, table.columns, table.records); err != nil {
			return fmt.Errorf("write %s: %w", table.name, err)
		}
	}
	return nil
}

func writeRecordsCSV(path string, columns []string, records []map[string]any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return err
	}
	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = formatValue(record[column])
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case *float64:
		return formatOptionalFloat(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

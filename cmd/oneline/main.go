// Command oneline validates and analyzes electrical one-line project
// graphs: load roll-up, voltage drop, short-circuit estimation, and NEC
// feeder-tap checks.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gridwright/oneline/pkg/analysis"
	"github.com/gridwright/oneline/pkg/export"
	"github.com/gridwright/oneline/pkg/logging"
	"github.com/gridwright/oneline/pkg/model"
	"github.com/gridwright/oneline/pkg/nec"
	"github.com/gridwright/oneline/pkg/tables"
	"github.com/gridwright/oneline/pkg/validation"
)

// Exit codes: 1 means validation found ERROR issues or the input failed
// schema checks; 2 means an operational failure (I/O, bad flags).
const (
	exitIssues      = 1
	exitOperational = 2
)

var (
	configPath string
	outPath    string
	reportPath string
	tablesDir  string
)

func main() {
	root := &cobra.Command{
		Use:           "oneline",
		Short:         "Deterministic electrical one-line analysis toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML analysis settings file")

	validateCmd := &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Validate a project graph and report issues",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVar(&reportPath, "report", "", "write the issue list to this path instead of stdout")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <graph.json>",
		Short: "Run the enabled analyses and emit results",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVar(&outPath, "out", "", "write the JSON results to this path instead of stdout")
	analyzeCmd.Flags().StringVar(&tablesDir, "tables", "", "also write per-table CSVs and run metadata to this directory")

	exportCmd := &cobra.Command{
		Use:   "export <graph.json> <dir>",
		Short: "Export the panel-schedule CSV and one-line JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}

	root.AddCommand(validateCmd, analyzeCmd, exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code, ok := exitCodeOf(err); ok {
			os.Exit(code)
		}
		os.Exit(exitOperational)
	}
}

// exitError carries a specific process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func exitCodeOf(err error) (int, bool) {
	if e, ok := err.(*exitError); ok {
		return e.code, true
	}
	return 0, false
}

func loadGraph(path string) (*model.Graph, error) {
	graph, err := model.LoadFile(path)
	if err != nil {
		if schemaErr, ok := err.(*model.SchemaError); ok {
			payload, _ := json.MarshalIndent(schemaErr.Errors, "", "  ")
			fmt.Fprintln(os.Stderr, "schema validation failed:")
			fmt.Fprintln(os.Stderr, string(payload))
			return nil, &exitError{code: exitIssues, err: err}
		}
		return nil, err
	}
	return graph, nil
}

func loadSettings() (analysis.Config, error) {
	if configPath == "" {
		return analysis.DefaultConfig(), nil
	}
	return analysis.LoadConfig(configPath)
}

func runValidate(cmd *cobra.Command, args []string) error {
	graph, err := loadGraph(args[0])
	if err != nil {
		return err
	}

	pipeline := validation.NewPipeline(tables.NewProvider())
	issues := pipeline.Validate(graph)
	logging.NewDefaultLogger().Info("validation complete",
		logging.NodeCount(len(graph.Nodes)),
		logging.EdgeCount(len(graph.Edges)),
		logging.IssueCount(len(issues)),
	)

	payload, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return err
	}
	if reportPath != "" {
		if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(reportPath, payload, 0o644); err != nil {
			return err
		}
	} else {
		fmt.Println(string(payload))
	}

	if validation.HasErrors(issues) {
		return &exitError{
			code: exitIssues,
			err:  fmt.Errorf("validation found ERROR issues"),
		}
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	graph, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	logger := logging.NewDefaultLogger()
	engine := nec.NewEngine(tables.NewProvider())

	output := analysis.Run(graph, engine, cfg.PowerFactor)
	payload, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	if outPath != "" {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, payload, 0o644); err != nil {
			return err
		}
		logger.Info("analysis results written", logging.Path(outPath))
	} else {
		fmt.Println(string(payload))
	}

	if tablesDir != "" {
		analyzer := analysis.NewAnalyzer(engine, cfg, logger)
		results := analyzer.Analyze(graph)
		if err := export.ResultTablesCSV(results, tablesDir); err != nil {
			return err
		}
		meta := export.NewRunMeta(graph)
		if err := export.WriteRunMeta(meta, filepath.Join(tablesDir, "run_meta.json")); err != nil {
			return err
		}
		logger.Info("result tables written", logging.Path(tablesDir))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	graph, err := loadGraph(args[0])
	if err != nil {
		return err
	}
	dir := args[1]

	if err := export.PanelScheduleCSV(graph, filepath.Join(dir, "panel_schedule.csv")); err != nil {
		return err
	}
	if err := export.OneLineJSON(graph, filepath.Join(dir, "one_line.json")); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exports written to %s\n", dir)
	return nil
}

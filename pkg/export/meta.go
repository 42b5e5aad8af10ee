package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gridwright/oneline/pkg/model"
)

// Version is the toolkit version recorded in run metadata.
const Version = "0.1.0"

// RunMeta captures the provenance of one analysis run.
type RunMeta struct {
	Version     string           `json:"version"`
	RunID       string           `json:"run_id"`
	Timestamp   string           `json:"timestamp"`
	NECYear     int              `json:"nec_year"`
	Assumptions []map[string]any `json:"assumptions"`
}

// NewRunMeta builds the metadata record for a run of the given graph.
func NewRunMeta(g *model.Graph) RunMeta {
	return RunMeta{
		Version:     Version,
		RunID:       uuid.NewString(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		NECYear:     g.Project.Code.NECYear,
		Assumptions: g.Assumptions,
	}
}

// WriteRunMeta writes the run metadata JSON to path.
func WriteRunMeta(meta RunMeta, path string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run metadata: %w", err)
	}
	return writeFile(path, data)
}

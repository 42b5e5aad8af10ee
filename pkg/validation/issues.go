// Package validation runs the rule-based checks over a project graph:
// topology, voltage/phase compatibility, panel protection, ampacity versus
// OCPD rating, and input coverage. Rules report structured issues; they
// never stop computation.
package validation

// Severity classifies an issue.
type Severity string

const (
	// SeverityError marks findings that make the graph unfit for design
	// use.
	SeverityError Severity = "ERROR"
	// SeverityWarning marks findings that deserve review but do not block
	// analysis.
	SeverityWarning Severity = "WARNING"
)

// Issue is one structured validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

// Issue codes, in rule order.
const (
	CodeUnknownFrom         = "TOPOLOGY_UNKNOWN_FROM"
	CodeUnknownTo           = "TOPOLOGY_UNKNOWN_TO"
	CodeCycle               = "TOPOLOGY_CYCLE"
	CodeVoltageMismatch     = "VOLTAGE_MISMATCH"
	CodePhaseIncompatible   = "PHASE_INCOMPATIBLE"
	CodeMissingOCPD         = "MISSING_OCPD"
	CodeMLORequiresOCPD     = "MLO_REQUIRES_OCPD"
	CodeAmpacityBelowOCPD   = "AMPACITY_LT_OCPD"
	CodeShortCircuitInput   = "SHORT_CIRCUIT_INPUT_MISSING"
	CodeLoadInputIncomplete = "LOAD_INPUT_INCOMPLETE"
)

// HasErrors reports whether any issue in the list carries ERROR severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

package domain

// RiskLevel is the severity of a risk verdict.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// rank orders risk levels for escalation: high > medium > none.
func (r RiskLevel) rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// Escalate returns the higher of the two levels. A high verdict is never
// downgraded by a later medium match.
func (r RiskLevel) Escalate(other RiskLevel) RiskLevel {
	if other.rank() > r.rank() {
		return other
	}
	return r
}

// Rule identifiers recorded on RuleMatch entries.
const (
	RuleAllergy               = "allergy"
	RuleMedicationInteraction = "medication_interaction"
)

// RuleMatch records a single rule firing with its supporting details.
type RuleMatch struct {
	Rule    string            `json:"rule"`
	Details map[string]string `json:"details"`
}

// Verdict is the reproducible outcome of one risk evaluation over a check's
// events. It is created fresh per extraction run, embedded verbatim into the
// persisted check record, and never mutated afterward.
type Verdict struct {
	RiskLevel RiskLevel   `json:"riskLevel"`
	Reasoning string      `json:"reasoning"`
	Matched   []RuleMatch `json:"matched,omitempty"`
}

// NoRiskReasoning is the reasoning reported when no rule fired.
const NoRiskReasoning = "No known risks detected."

// SafeDefaultVerdict is substituted when verdict computation fails internally.
// Event capture must never be blocked by risk scoring.
func SafeDefaultVerdict() Verdict {
	return Verdict{RiskLevel: RiskNone, Reasoning: "Verdict computation failed"}
}

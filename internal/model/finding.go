package model

// Severity ranks a security finding.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// SecurityFinding is one triggered heuristic rule. Findings are accumulated
// in rule-declaration order and never deduplicated.
type SecurityFinding struct {
	Severity    Severity `json:"severity"`
	Issue       string   `json:"issue"`
	Description string   `json:"description"`
}

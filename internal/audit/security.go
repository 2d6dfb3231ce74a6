package audit

import (
	"regexp"
	"strings"

	"contractScope/internal/model"
)

// securityRule is one textual heuristic over verified source code. Each
// rule produces at most one finding.
type securityRule struct {
	Severity    model.Severity
	Issue       string
	Description string
	Triggered   func(source string) bool
}

var (
	valueCallPattern       = regexp.MustCompile(`\.call\s*\{\s*value\s*:|\.call\.value\s*\(`)
	reentrancyGuardPattern = regexp.MustCompile(`nonReentrant|ReentrancyGuard`)
	lowLevelCallPattern    = regexp.MustCompile(`\.(call|delegatecall)\s*[({]`)
	requirePattern         = regexp.MustCompile(`require\s*\(`)
	timestampPattern       = regexp.MustCompile(`block\.timestamp|\bnow\b`)
	selfDestructPattern    = regexp.MustCompile(`\bselfdestruct\s*\(|\bsuicide\s*\(`)
)

// securityRules is evaluated unconditionally and in declaration order.
// These are substring/regex heuristics over raw source text, not dataflow
// analysis; false positives and negatives are part of the contract.
var securityRules = []securityRule{
	{
		Severity:    model.SeverityHigh,
		Issue:       "Potential reentrancy vulnerability",
		Description: "Source performs a low-level value call without any reentrancy-guard marker (nonReentrant / ReentrancyGuard) present.",
		Triggered: func(source string) bool {
			return valueCallPattern.MatchString(source) && !reentrancyGuardPattern.MatchString(source)
		},
	},
	{
		Severity:    model.SeverityMedium,
		Issue:       "tx.origin used for authorization",
		Description: "tx.origin is a deprecated authentication primitive; a phishing contract can satisfy it on the victim's behalf.",
		Triggered: func(source string) bool {
			return strings.Contains(source, "tx.origin")
		},
	},
	{
		Severity:    model.SeverityMedium,
		Issue:       "Unchecked low-level call",
		Description: "Raw call/delegatecall is used but no require-style check appears anywhere in the source; failed calls may go unnoticed.",
		Triggered: func(source string) bool {
			return lowLevelCallPattern.MatchString(source) && !requirePattern.MatchString(source)
		},
	},
	{
		Severity:    model.SeverityLow,
		Issue:       "Block timestamp dependence",
		Description: "block.timestamp (or now) is used as a decision input; miners can skew it within protocol bounds.",
		Triggered: func(source string) bool {
			return timestampPattern.MatchString(source)
		},
	},
	{
		Severity:    model.SeverityHigh,
		Issue:       "Contract can self-destruct",
		Description: "selfdestruct/suicide is present; the contract can be removed and its funds redirected by whoever can reach it.",
		Triggered: func(source string) bool {
			return selfDestructPattern.MatchString(source)
		},
	},
}

// ScanSource applies the full security rule set to verified source text and
// returns the triggered findings in rule-declaration order.
func ScanSource(source string) []model.SecurityFinding {
	var findings []model.SecurityFinding
	for _, rule := range securityRules {
		if !rule.Triggered(source) {
			continue
		}
		findings = append(findings, model.SecurityFinding{
			Severity:    rule.Severity,
			Issue:       rule.Issue,
			Description: rule.Description,
		})
	}
	return findings
}

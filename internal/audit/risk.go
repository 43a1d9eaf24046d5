// Package audit classifies IAM access keys by lifecycle risk and folds
// the per-key findings into an account-level compliance verdict.
package audit

import "fmt"

// RiskLevel is the ordinal severity of a key's compliance posture.
// The ordering matters: escalation rules may only raise severity.
type RiskLevel int

const (
	RiskCompliant RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskNames = map[RiskLevel]string{
	RiskCompliant: "COMPLIANT",
	RiskLow:       "LOW",
	RiskMedium:    "MEDIUM",
	RiskHigh:      "HIGH",
	RiskCritical:  "CRITICAL",
}

func (r RiskLevel) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RiskLevel(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler so risk levels serialize
// as their upper-case names in JSON and CSV output.
func (r RiskLevel) MarshalText() ([]byte, error) {
	name, ok := riskNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown risk level %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(text []byte) error {
	for level, name := range riskNames {
		if name == string(text) {
			*r = level
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", string(text))
}

// ComplianceStatus is the account-level verdict.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "COMPLIANT"
	StatusNonCompliant ComplianceStatus = "NON_COMPLIANT"
)

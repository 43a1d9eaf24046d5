// Package report renders an assessment as JSON, CSV and console views.
// All three are projections of the same data; no additional logic.
package report

import (
	"time"

	"github.com/cloudkeel/keyaudit/internal/audit"
)

// SchemaVersion identifies the JSON document layout.
const SchemaVersion = "1.0.0"

// Document is the machine-readable assessment report.
type Document struct {
	SchemaVersion        string                  `json:"schema_version"`
	Account              AccountMetadata         `json:"account"`
	Summary              audit.AssessmentSummary `json:"summary"`
	ComplianceAssessment ComplianceAssessment    `json:"compliance_assessment"`
	Findings             []Finding               `json:"findings"`
}

// AccountMetadata identifies the audited account and run.
type AccountMetadata struct {
	AccountID    string `json:"account_id"`
	AccountAlias string `json:"account_alias,omitempty"`
	Profile      string `json:"profile,omitempty"`
	GeneratedAt  string `json:"generated_at"`
}

// ComplianceAssessment carries the verdict and framework mappings.
type ComplianceAssessment struct {
	OverallStatus     audit.ComplianceStatus `json:"overall_status"`
	FrameworkMappings []FrameworkMapping     `json:"framework_mappings"`
}

// FrameworkMapping references the compliance controls this audit covers.
type FrameworkMapping struct {
	Framework   string   `json:"framework"`
	Controls    []string `json:"controls"`
	Requirement string   `json:"requirement"`
}

// Finding is the serialized form of a single key classification.
type Finding struct {
	UserName        string          `json:"user_name"`
	AccessKeyID     string          `json:"access_key_id"`
	CreatedAt       string          `json:"created_at"`
	LastUsedAt      string          `json:"last_used_at,omitempty"`
	LastUsedService string          `json:"last_used_service,omitempty"`
	LastUsedRegion  string          `json:"last_used_region,omitempty"`
	Active          bool            `json:"active"`
	AgeDays         int             `json:"age_days"`
	DaysSinceUse    *int            `json:"days_since_use"`
	NeverUsed       bool            `json:"never_used"`
	RiskLevel       audit.RiskLevel `json:"risk_level"`
	Recommendation  string          `json:"recommendation"`
}

// frameworkMappings are the static control references covered by
// access-key lifecycle auditing.
func frameworkMappings() []FrameworkMapping {
	return []FrameworkMapping{
		{
			Framework:   "CIS AWS Foundations Benchmark",
			Controls:    []string{"1.12", "1.13", "1.14"},
			Requirement: "Credentials unused for 45 days or more are disabled; access keys are rotated",
		},
		{
			Framework:   "NIST 800-53",
			Controls:    []string{"AC-2", "IA-5"},
			Requirement: "Account management and authenticator lifecycle management",
		},
		{
			Framework:   "PCI DSS",
			Controls:    []string{"8.2.4"},
			Requirement: "Change user credentials at least once every 90 days",
		},
	}
}

// NewDocument builds the JSON document view of an assessment.
func NewDocument(a *audit.Assessment) Document {
	doc := Document{
		SchemaVersion: SchemaVersion,
		Account: AccountMetadata{
			AccountID:   a.AccountID,
			Profile:     a.Profile,
			GeneratedAt: a.GeneratedAt.Format(time.RFC3339),
		},
		Summary: a.Summary,
		ComplianceAssessment: ComplianceAssessment{
			OverallStatus:     a.Summary.OverallStatus,
			FrameworkMappings: frameworkMappings(),
		},
		Findings: make([]Finding, 0, len(a.Findings)),
	}
	if a.AccountAlias != nil {
		doc.Account.AccountAlias = *a.AccountAlias
	}

	for _, c := range a.Findings {
		doc.Findings = append(doc.Findings, newFinding(c))
	}
	return doc
}

func newFinding(c audit.Classification) Finding {
	f := Finding{
		UserName:        c.Fact.UserName,
		AccessKeyID:     c.Fact.KeyID,
		CreatedAt:       c.Fact.CreatedAt.Format(time.RFC3339),
		LastUsedService: c.Fact.LastUsedService,
		LastUsedRegion:  c.Fact.LastUsedRegion,
		Active:          c.Fact.Active,
		AgeDays:         c.AgeDays,
		NeverUsed:       c.NeverUsed,
		RiskLevel:       c.Risk,
		Recommendation:  c.Recommendation,
	}
	if !c.NeverUsed {
		f.LastUsedAt = c.Fact.LastUsedAt.Format(time.RFC3339)
		days := c.DaysSinceUse
		f.DaysSinceUse = &days
	}
	return f
}

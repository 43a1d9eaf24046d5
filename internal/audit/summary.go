package audit

import "math"

// AssessmentSummary is the account-level fold of all classifications.
type AssessmentSummary struct {
	TotalUsers     int              `json:"total_users"`
	UsersWithKeys  int              `json:"users_with_keys"`
	TotalKeys      int              `json:"total_keys"`
	CriticalKeys   int              `json:"critical_keys"`
	HighRiskKeys   int              `json:"high_risk_keys"`
	MediumRiskKeys int              `json:"medium_risk_keys"`
	LowRiskKeys    int              `json:"low_risk_keys"`
	CompliantKeys  int              `json:"compliant_keys"`
	NeverUsedKeys  int              `json:"never_used_keys"`
	ComplianceRate float64          `json:"compliance_rate"`
	OverallStatus  ComplianceStatus `json:"overall_status"`
	NoKeysFound    bool             `json:"no_keys_found"`
}

// Summarize folds classifications into an AssessmentSummary. Pure and
// order-independent: permuting the input yields an identical summary.
//
// An account with zero keys is compliant by convention, with the
// NoKeysFound flag set so consumers can tell it apart from an
// audited-and-clean account.
func Summarize(classifications []Classification, totalUsers, usersWithKeys int) AssessmentSummary {
	summary := AssessmentSummary{
		TotalUsers:    totalUsers,
		UsersWithKeys: usersWithKeys,
		TotalKeys:     len(classifications),
	}

	for _, c := range classifications {
		switch c.Risk {
		case RiskCritical:
			summary.CriticalKeys++
		case RiskHigh:
			summary.HighRiskKeys++
		case RiskMedium:
			summary.MediumRiskKeys++
		case RiskLow:
			summary.LowRiskKeys++
		case RiskCompliant:
			summary.CompliantKeys++
		}
		if c.NeverUsed {
			summary.NeverUsedKeys++
		}
	}

	if summary.TotalKeys == 0 {
		summary.ComplianceRate = 100.0
		summary.OverallStatus = StatusCompliant
		summary.NoKeysFound = true
		return summary
	}

	summary.ComplianceRate = roundRate(float64(summary.CompliantKeys) * 100 / float64(summary.TotalKeys))

	summary.OverallStatus = StatusNonCompliant
	if summary.CriticalKeys == 0 && summary.HighRiskKeys == 0 {
		summary.OverallStatus = StatusCompliant
	}

	return summary
}

// KeysAtOrAbove returns the number of keys classified at or above level.
func (s AssessmentSummary) KeysAtOrAbove(level RiskLevel) int {
	total := 0
	if level <= RiskCompliant {
		total += s.CompliantKeys
	}
	if level <= RiskLow {
		total += s.LowRiskKeys
	}
	if level <= RiskMedium {
		total += s.MediumRiskKeys
	}
	if level <= RiskHigh {
		total += s.HighRiskKeys
	}
	if level <= RiskCritical {
		total += s.CriticalKeys
	}
	return total
}

// roundRate rounds to one decimal place, half away from zero.
func roundRate(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

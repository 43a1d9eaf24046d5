package audit

import (
	"math/rand"
	"testing"
)

func classificationsWithRisks(risks ...RiskLevel) []Classification {
	out := make([]Classification, 0, len(risks))
	for _, r := range risks {
		out = append(out, Classification{Risk: r})
	}
	return out
}

func TestSummarizeTally(t *testing.T) {
	classifications := classificationsWithRisks(
		RiskCritical, RiskHigh, RiskHigh, RiskMedium, RiskLow, RiskCompliant, RiskCompliant,
	)
	classifications[0].NeverUsed = true

	summary := Summarize(classifications, 5, 4)

	if summary.TotalUsers != 5 || summary.UsersWithKeys != 4 {
		t.Fatalf("unexpected user counts: %+v", summary)
	}
	if summary.TotalKeys != 7 {
		t.Fatalf("expected 7 total keys, got %d", summary.TotalKeys)
	}

	perLevel := summary.CriticalKeys + summary.HighRiskKeys + summary.MediumRiskKeys +
		summary.LowRiskKeys + summary.CompliantKeys
	if perLevel != summary.TotalKeys {
		t.Fatalf("per-level counts %d do not sum to total %d", perLevel, summary.TotalKeys)
	}

	if summary.CriticalKeys != 1 || summary.HighRiskKeys != 2 || summary.MediumRiskKeys != 1 ||
		summary.LowRiskKeys != 1 || summary.CompliantKeys != 2 {
		t.Fatalf("unexpected tally: %+v", summary)
	}
	if summary.NeverUsedKeys != 1 {
		t.Fatalf("expected 1 never-used key, got %d", summary.NeverUsedKeys)
	}
	if summary.OverallStatus != StatusNonCompliant {
		t.Fatalf("expected NON_COMPLIANT with critical keys present")
	}
	if summary.NoKeysFound {
		t.Fatalf("NoKeysFound should be false when keys exist")
	}
}

func TestSummarizeComplianceRate(t *testing.T) {
	cases := []struct {
		name      string
		compliant int
		other     int
		want      float64
	}{
		{"all compliant", 4, 0, 100.0},
		{"none compliant", 0, 4, 0.0},
		{"one third", 1, 2, 33.3},
		{"two thirds", 2, 1, 66.7},
		{"exact half decimal rounds up", 1, 15, 6.3}, // 6.25 -> 6.3 (half-up)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var risks []RiskLevel
			for i := 0; i < tc.compliant; i++ {
				risks = append(risks, RiskCompliant)
			}
			for i := 0; i < tc.other; i++ {
				risks = append(risks, RiskMedium)
			}

			summary := Summarize(classificationsWithRisks(risks...), 1, 1)
			if summary.ComplianceRate != tc.want {
				t.Fatalf("expected rate %.1f, got %.1f", tc.want, summary.ComplianceRate)
			}
			if summary.ComplianceRate < 0 || summary.ComplianceRate > 100 {
				t.Fatalf("rate out of range: %.1f", summary.ComplianceRate)
			}
		})
	}
}

func TestSummarizeLowIsNotCompliant(t *testing.T) {
	// Inactive (LOW) keys do not count toward the compliance rate, but
	// they also do not fail the overall verdict.
	summary := Summarize(classificationsWithRisks(RiskLow, RiskLow), 2, 2)
	if summary.ComplianceRate != 0.0 {
		t.Fatalf("expected 0.0 rate with only LOW keys, got %.1f", summary.ComplianceRate)
	}
	if summary.OverallStatus != StatusCompliant {
		t.Fatalf("expected COMPLIANT verdict with no critical or high keys")
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	classifications := classificationsWithRisks(
		RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskCompliant,
		RiskCompliant, RiskMedium, RiskCritical,
	)
	want := Summarize(classifications, 3, 3)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Classification, len(classifications))
		copy(shuffled, classifications)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		if got := Summarize(shuffled, 3, 3); got != want {
			t.Fatalf("summary changed under permutation: %+v vs %+v", got, want)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 0, 0)

	if summary.TotalKeys != 0 {
		t.Fatalf("expected 0 total keys, got %d", summary.TotalKeys)
	}
	if summary.ComplianceRate != 100.0 {
		t.Fatalf("expected 100.0 rate by convention, got %.1f", summary.ComplianceRate)
	}
	if summary.OverallStatus != StatusCompliant {
		t.Fatalf("expected COMPLIANT by convention")
	}
	if !summary.NoKeysFound {
		t.Fatalf("expected NoKeysFound=true")
	}
}

func TestKeysAtOrAbove(t *testing.T) {
	summary := AssessmentSummary{
		CompliantKeys:  5,
		LowRiskKeys:    4,
		MediumRiskKeys: 3,
		HighRiskKeys:   2,
		CriticalKeys:   1,
	}

	cases := []struct {
		level RiskLevel
		want  int
	}{
		{RiskCompliant, 15},
		{RiskLow, 10},
		{RiskMedium, 6},
		{RiskHigh, 3},
		{RiskCritical, 1},
	}
	for _, tc := range cases {
		if got := summary.KeysAtOrAbove(tc.level); got != tc.want {
			t.Fatalf("KeysAtOrAbove(%s): expected %d, got %d", tc.level, tc.want, got)
		}
	}
}

func TestRoundRate(t *testing.T) {
	if got := roundRate(6.25); got != 6.3 {
		t.Fatalf("expected half-up 6.3, got %v", got)
	}
	if got := roundRate(33.333333); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
	if got := roundRate(66.666666); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
	if got := roundRate(100.0); got != 100.0 {
		t.Fatalf("expected 100.0, got %v", got)
	}
}

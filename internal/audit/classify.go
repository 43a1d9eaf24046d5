package audit

import (
	"fmt"
	"time"

	"github.com/cloudkeel/keyaudit/internal/aws"
)

// Recommendation strings attached to classifications.
const (
	RecommendInactive     = "Inactive key, safe to delete if unused"
	RecommendNeverUsedOld = "Delete or justify: never used and long-lived"
	RecommendNewUnused    = "Monitor: newly created and unused"
	RecommendRotateNow    = "Rotate immediately: severely stale"
	RecommendRotateSoon   = "Rotate soon: stale key"
	RecommendReview       = "Review: approaching staleness"
	RecommendCompliant    = "Within rotation policy"

	// maxAgeNote is appended when a key exceeds the maximum key age.
	maxAgeNote = "; exceeds maximum key age"
)

// Classification is the risk assessment of a single access key. Derived
// deterministically from the fact and a reference time; no hidden state.
type Classification struct {
	Fact           aws.AccessKeyFact
	AgeDays        int
	DaysSinceUse   int // Valid only when NeverUsed is false
	NeverUsed      bool
	Risk           RiskLevel
	Recommendation string
}

// InvalidFactError reports a malformed access-key fact. Data-integrity
// violations are fatal for the run, never silently corrected.
type InvalidFactError struct {
	UserName string
	KeyID    string
	Reason   string
}

func (e *InvalidFactError) Error() string {
	return fmt.Sprintf("invalid access key fact for user %q key %q: %s", e.UserName, e.KeyID, e.Reason)
}

// Classify maps an access-key fact to a risk level and recommendation.
//
// The check order is part of the contract: inactive first, then the
// never-used rules, then the staleness ladder, and finally the age
// escalation, which only ever raises severity.
func Classify(fact aws.AccessKeyFact, now time.Time, policy Policy) (Classification, error) {
	if err := validateFact(fact, now); err != nil {
		return Classification{}, err
	}

	c := Classification{
		Fact:      fact,
		AgeDays:   daysBetween(fact.CreatedAt, now),
		NeverUsed: fact.NeverUsed(),
	}

	switch {
	case !fact.Active:
		c.Risk = RiskLow
		c.Recommendation = RecommendInactive
		return c, nil

	case fact.NeverUsed():
		if c.AgeDays > policy.NeverUsedMaxAgeDays {
			c.Risk = RiskCritical
			c.Recommendation = RecommendNeverUsedOld
		} else {
			c.Risk = RiskMedium
			c.Recommendation = RecommendNewUnused
		}

	default:
		c.DaysSinceUse = daysBetween(*fact.LastUsedAt, now)
		switch {
		case c.DaysSinceUse > policy.CriticalStaleDays:
			c.Risk = RiskCritical
			c.Recommendation = RecommendRotateNow
		case c.DaysSinceUse > policy.HighStaleDays:
			c.Risk = RiskHigh
			c.Recommendation = RecommendRotateSoon
		case c.DaysSinceUse > policy.MediumStaleDays:
			c.Risk = RiskMedium
			c.Recommendation = RecommendReview
		default:
			c.Risk = RiskCompliant
			c.Recommendation = RecommendCompliant
		}
	}

	// Age escalation runs last and never lowers severity.
	if c.AgeDays > policy.MaxKeyAgeDays {
		if c.Risk < RiskHigh {
			c.Risk = RiskHigh
		}
		c.Recommendation += maxAgeNote
	}

	return c, nil
}

func validateFact(fact aws.AccessKeyFact, now time.Time) error {
	if fact.CreatedAt.IsZero() {
		return &InvalidFactError{UserName: fact.UserName, KeyID: fact.KeyID, Reason: "missing creation time"}
	}
	if fact.CreatedAt.After(now) {
		return &InvalidFactError{UserName: fact.UserName, KeyID: fact.KeyID, Reason: "creation time is in the future"}
	}
	if fact.LastUsedAt != nil && fact.LastUsedAt.Before(fact.CreatedAt) {
		return &InvalidFactError{UserName: fact.UserName, KeyID: fact.KeyID, Reason: "last use precedes creation"}
	}
	return nil
}

// daysBetween returns the number of whole days from t to now, clamped
// at zero. AWS last-used timestamps can run slightly ahead of the local
// clock, and a negative window must never reach the report.
func daysBetween(t, now time.Time) int {
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

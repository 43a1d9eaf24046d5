package audit

import "fmt"

// Policy contains the configurable staleness thresholds, all in days.
type Policy struct {
	// NeverUsedMaxAgeDays is the age beyond which a never-used key is critical.
	NeverUsedMaxAgeDays int `mapstructure:"never_used_max_age_days"`
	// CriticalStaleDays is the unused window beyond which a key is critical.
	CriticalStaleDays int `mapstructure:"critical_stale_days"`
	// HighStaleDays is the unused window beyond which a key is high risk.
	HighStaleDays int `mapstructure:"high_stale_days"`
	// MediumStaleDays is the unused window beyond which a key needs review.
	MediumStaleDays int `mapstructure:"medium_stale_days"`
	// MaxKeyAgeDays is the absolute key age beyond which risk is raised
	// to at least high, regardless of use recency.
	MaxKeyAgeDays int `mapstructure:"max_key_age_days"`
}

// DefaultPolicy returns the default staleness thresholds.
func DefaultPolicy() Policy {
	return Policy{
		NeverUsedMaxAgeDays: 90,
		CriticalStaleDays:   180,
		HighStaleDays:       90,
		MediumStaleDays:     60,
		MaxKeyAgeDays:       365,
	}
}

// Validate checks that the thresholds are positive and correctly ordered.
func (p Policy) Validate() error {
	if p.NeverUsedMaxAgeDays <= 0 || p.CriticalStaleDays <= 0 ||
		p.HighStaleDays <= 0 || p.MediumStaleDays <= 0 || p.MaxKeyAgeDays <= 0 {
		return fmt.Errorf("policy thresholds must be positive: %+v", p)
	}
	if p.MediumStaleDays > p.HighStaleDays || p.HighStaleDays > p.CriticalStaleDays {
		return fmt.Errorf("staleness thresholds must satisfy medium <= high <= critical: %+v", p)
	}
	return nil
}

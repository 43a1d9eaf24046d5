package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cloudkeel/keyaudit/internal/audit"
)

// neverSentinel marks keys with no recorded use in the flat output.
const neverSentinel = "never"

var csvHeader = []string{
	"user_name",
	"access_key_id",
	"created_at",
	"last_used_at",
	"last_used_service",
	"last_used_region",
	"active",
	"age_days",
	"days_since_use",
	"risk_level",
	"recommendation",
}

// WriteCSV writes one row per access key, columns matching the
// classification fields plus user identity.
func WriteCSV(w io.Writer, a *audit.Assessment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, c := range a.Findings {
		if err := cw.Write(csvRow(c)); err != nil {
			return fmt.Errorf("writing CSV row for key %s: %w", c.Fact.KeyID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

func csvRow(c audit.Classification) []string {
	lastUsedAt := neverSentinel
	daysSinceUse := neverSentinel
	if !c.NeverUsed {
		lastUsedAt = c.Fact.LastUsedAt.Format(time.RFC3339)
		daysSinceUse = strconv.Itoa(c.DaysSinceUse)
	}

	return []string{
		c.Fact.UserName,
		c.Fact.KeyID,
		c.Fact.CreatedAt.Format(time.RFC3339),
		lastUsedAt,
		c.Fact.LastUsedService,
		c.Fact.LastUsedRegion,
		strconv.FormatBool(c.Fact.Active),
		strconv.Itoa(c.AgeDays),
		daysSinceUse,
		c.Risk.String(),
		c.Recommendation,
	}
}

package aws

import (
	"testing"
	"time"
)

func TestAccessKeyFactNeverUsed(t *testing.T) {
	fact := AccessKeyFact{
		UserName:  "alice",
		KeyID:     "AKIAEXAMPLE",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
	if !fact.NeverUsed() {
		t.Fatalf("expected NeverUsed=true for key without last-used date")
	}

	used := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	fact.LastUsedAt = &used
	if fact.NeverUsed() {
		t.Fatalf("expected NeverUsed=false once last-used date is set")
	}
}

func TestSanitizeLastUsedField(t *testing.T) {
	if got := sanitizeLastUsedField("N/A"); got != "" {
		t.Fatalf("expected empty string for N/A, got %q", got)
	}
	if got := sanitizeLastUsedField("s3"); got != "s3" {
		t.Fatalf("expected s3 to pass through, got %q", got)
	}
}

// Package aws provides AWS API client functionality.
package aws

import "time"

// User represents an IAM user identity.
type User struct {
	Name      string
	ARN       string
	CreatedAt time.Time
}

// AccessKeyFact is a normalized access-key record with the last-used
// lookup already resolved. Immutable once extracted.
type AccessKeyFact struct {
	UserName        string
	KeyID           string
	CreatedAt       time.Time
	LastUsedAt      *time.Time
	LastUsedService string
	LastUsedRegion  string
	Active          bool
}

// NeverUsed returns true if the key has no recorded use.
func (f AccessKeyFact) NeverUsed() bool {
	return f.LastUsedAt == nil
}

package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudkeel/keyaudit/internal/aws"
)

// StatusFunc is called to report indeterminate status updates.
type StatusFunc func(message string)

// ProgressFunc is called to report determinate progress (current/total).
type ProgressFunc func(current, total int64, message string)

// Config holds the auditor configuration.
type Config struct {
	Policy  Policy
	Profile string // Recorded in the assessment metadata, opaque here

	// Now supplies the reference time for classification. Defaults to
	// time.Now; injectable for deterministic tests.
	Now func() time.Time

	// Progress callbacks (optional, set by the CLI to report status)
	OnStatus   StatusFunc
	OnProgress ProgressFunc
}

// Auditor runs the one-shot fetch, classify, aggregate flow.
type Auditor struct {
	config Config
	client aws.Client
}

// Assessment is the complete result of one audit run.
type Assessment struct {
	AccountID    string
	AccountAlias *string
	Profile      string
	GeneratedAt  time.Time
	Summary      AssessmentSummary
	Findings     []Classification
}

// New creates a new Auditor for the given fact source.
func New(config Config, client aws.Client) (*Auditor, error) {
	if client == nil {
		return nil, fmt.Errorf("aws client is required")
	}
	if config.Policy == (Policy{}) {
		config.Policy = DefaultPolicy()
	}
	if err := config.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Auditor{config: config, client: client}, nil
}

// status reports an indeterminate status update.
func (a *Auditor) status(message string) {
	if a.config.OnStatus != nil {
		a.config.OnStatus(message)
	}
}

// progress reports a determinate progress update.
func (a *Auditor) progress(current, total int64, message string) {
	if a.config.OnProgress != nil {
		a.config.OnProgress(current, total, message)
	}
}

// Run fetches all access-key facts, classifies them and aggregates the
// result. Any fetch or data-integrity error aborts the run; no partial
// report is produced.
func (a *Auditor) Run(ctx context.Context) (*Assessment, error) {
	a.status("Connecting to AWS...")
	accountID, err := a.client.GetCallerIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving account identity: %w", err)
	}
	a.status(fmt.Sprintf("Connected to account %s", accountID))

	alias, _ := a.client.GetAccountAlias(ctx)

	a.status("Listing IAM users...")
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing IAM users: %w", err)
	}

	facts, usersWithKeys, err := a.fetchFacts(ctx, users)
	if err != nil {
		return nil, err
	}

	now := a.config.Now()
	findings := make([]Classification, 0, len(facts))
	for _, fact := range facts {
		c, err := Classify(fact, now, a.config.Policy)
		if err != nil {
			return nil, err
		}
		findings = append(findings, c)
	}

	a.status("Aggregating findings")
	return &Assessment{
		AccountID:    accountID,
		AccountAlias: alias,
		Profile:      a.config.Profile,
		GeneratedAt:  now.UTC(),
		Summary:      Summarize(findings, len(users), usersWithKeys),
		Findings:     findings,
	}, nil
}

// fetchFacts materializes the full ordered fact sequence before any
// classification runs.
func (a *Auditor) fetchFacts(ctx context.Context, users []aws.User) ([]aws.AccessKeyFact, int, error) {
	var facts []aws.AccessKeyFact
	usersWithKeys := 0

	total := int64(len(users))
	for i, user := range users {
		a.progress(int64(i+1), total, fmt.Sprintf("Fetching access keys for %s", user.Name))

		userFacts, err := a.client.ListAccessKeys(ctx, user.Name)
		if err != nil {
			return nil, 0, fmt.Errorf("fetching access keys for %s: %w", user.Name, err)
		}
		if len(userFacts) > 0 {
			usersWithKeys++
		}
		facts = append(facts, userFacts...)
	}

	return facts, usersWithKeys, nil
}

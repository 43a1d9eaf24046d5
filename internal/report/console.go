package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/cloudkeel/keyaudit/internal/audit"
)

// ConsoleReporter renders the human-readable assessment summary. The
// values come straight from the summary, so they always match the
// structured document.
type ConsoleReporter struct {
	writer io.Writer
}

// NewConsoleReporter creates a reporter writing to w (stdout if nil).
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleReporter{writer: w}
}

const summaryTemplate = `{{rule}}
ASSESSMENT SUMMARY
{{rule}}
Account ID:         {{.AccountID}}{{if .AccountAlias}}
Account Alias:      {{.AccountAlias}}{{end}}{{if .Profile}}
Profile:            {{.Profile}}{{end}}
Total Users:        {{.Summary.TotalUsers}}
Users With Keys:    {{.Summary.UsersWithKeys}}
Total Access Keys:  {{.Summary.TotalKeys}}
Critical Risk Keys: {{.Summary.CriticalKeys}}
High Risk Keys:     {{.Summary.HighRiskKeys}}
Medium Risk Keys:   {{.Summary.MediumRiskKeys}}
Low Risk Keys:      {{.Summary.LowRiskKeys}}
Compliant Keys:     {{.Summary.CompliantKeys}}
Never Used Keys:    {{.Summary.NeverUsedKeys}}
Compliance Rate:    {{printf "%.1f" .Summary.ComplianceRate}}%
Overall Status:     {{.Summary.OverallStatus}}
{{if .Summary.NoKeysFound}}No access keys found in this account.
{{else if eq (printf "%s" .Summary.OverallStatus) "COMPLIANT"}}Access key management meets compliance requirements.
{{else}}Access key management requires attention, see recommendations in the report.
{{end}}`

type consoleData struct {
	AccountID    string
	AccountAlias string
	Profile      string
	Summary      audit.AssessmentSummary
}

// Handle renders the summary for the given assessment.
func (r *ConsoleReporter) Handle(a *audit.Assessment) error {
	funcMap := template.FuncMap{
		"rule": func() string { return strings.Repeat("=", 60) },
	}

	t, err := template.New("summary").Funcs(funcMap).Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("parsing summary template: %w", err)
	}

	data := consoleData{
		AccountID: a.AccountID,
		Profile:   a.Profile,
		Summary:   a.Summary,
	}
	if a.AccountAlias != nil {
		data.AccountAlias = *a.AccountAlias
	}

	return t.Execute(r.writer, data)
}

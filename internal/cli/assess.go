package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cloudkeel/keyaudit/internal/audit"
	"github.com/cloudkeel/keyaudit/internal/aws"
	"github.com/cloudkeel/keyaudit/internal/report"
)

// AssessCmd runs the one-shot access key assessment.
type AssessCmd struct {
	profile    string
	region     string
	roleARN    string
	externalID string
	policyPath string
	jsonPath   string
	csvPath    string
	noFiles    bool
	failOn     string

	logger zerolog.Logger
	output io.Writer
}

// NewAssessCmd builds the assess subcommand.
func NewAssessCmd(logger zerolog.Logger, output io.Writer) *cobra.Command {
	ac := &AssessCmd{logger: logger, output: output}
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Audit access keys and write compliance reports",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "", "AWS shared-config profile to use")
	cmd.Flags().StringVar(&ac.region, "region", "", "AWS region override")
	cmd.Flags().StringVar(&ac.roleARN, "role-arn", "", "IAM role to assume")
	cmd.Flags().StringVar(&ac.externalID, "external-id", "", "External ID for assume role")
	cmd.Flags().StringVar(&ac.policyPath, "config", "", "Path to a staleness policy file")
	cmd.Flags().StringVar(&ac.jsonPath, "output-json", report.DefaultJSONName, "Path for the JSON report")
	cmd.Flags().StringVar(&ac.csvPath, "output-csv", report.DefaultCSVName, "Path for the CSV report")
	cmd.Flags().BoolVar(&ac.noFiles, "no-files", false, "Skip writing report files, print the summary only")
	cmd.Flags().StringVar(&ac.failOn, "fail-on", "", "Exit non-zero when any key is at or above this risk level (e.g. HIGH)")

	return cmd
}

func (ac *AssessCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	threshold, failOnSet, err := parseFailOn(ac.failOn)
	if err != nil {
		return err
	}

	policy, err := LoadPolicy(ac.policyPath)
	if err != nil {
		return err
	}

	client, err := aws.NewClient(ctx, aws.Options{
		Profile:    ac.profile,
		Region:     ac.region,
		RoleARN:    ac.roleARN,
		ExternalID: ac.externalID,
	})
	if err != nil {
		return err
	}

	auditor, err := audit.New(audit.Config{
		Policy:  policy,
		Profile: ac.profile,
		OnStatus: func(message string) {
			ac.logger.Info().Msg(message)
		},
		OnProgress: func(current, total int64, message string) {
			ac.logger.Info().Int64("current", current).Int64("total", total).Msg(message)
		},
	}, client)
	if err != nil {
		return err
	}

	assessment, err := auditor.Run(ctx)
	if err != nil {
		return describeRunError(err)
	}

	if !ac.noFiles {
		if err := report.WriteJSONFile(ac.jsonPath, assessment); err != nil {
			return err
		}
		ac.logger.Info().Str("path", ac.jsonPath).Msg("JSON report written")

		if err := report.WriteCSVFile(ac.csvPath, assessment); err != nil {
			return err
		}
		ac.logger.Info().Str("path", ac.csvPath).Msg("CSV report written")
	}

	if err := report.NewConsoleReporter(ac.output).Handle(assessment); err != nil {
		return err
	}

	if failOnSet {
		if n := assessment.Summary.KeysAtOrAbove(threshold); n > 0 {
			return fmt.Errorf("%d access keys at or above %s risk", n, threshold)
		}
	}

	return nil
}

// parseFailOn parses the --fail-on flag value, accepting any case.
// An empty value disables the threshold.
func parseFailOn(value string) (audit.RiskLevel, bool, error) {
	if value == "" {
		return 0, false, nil
	}
	var level audit.RiskLevel
	if err := level.UnmarshalText([]byte(strings.ToUpper(value))); err != nil {
		return 0, false, fmt.Errorf("invalid --fail-on value: %w", err)
	}
	return level, true, nil
}

// describeRunError prefixes the failure with its classification so the
// operator can tell a credential problem from a transient one.
func describeRunError(err error) error {
	switch {
	case aws.IsCredentialsError(err):
		return fmt.Errorf("credentials or permission error: %w", err)
	case aws.IsTransientError(err):
		return fmt.Errorf("transient AWS error, retry later: %w", err)
	default:
		return err
	}
}

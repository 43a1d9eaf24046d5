package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client provides access to the IAM fact source.
type Client interface {
	// GetCallerIdentity returns the account ID of the current credentials.
	GetCallerIdentity(ctx context.Context) (string, error)

	// GetAccountAlias returns the account alias if set.
	GetAccountAlias(ctx context.Context) (*string, error)

	// ListUsers returns all IAM users in the account.
	ListUsers(ctx context.Context) ([]User, error)

	// ListAccessKeys returns all access keys for a user, with the
	// last-used lookup resolved for each key.
	ListAccessKeys(ctx context.Context, userName string) ([]AccessKeyFact, error)
}

// Options holds credential selection for the AWS client.
type Options struct {
	Profile    string // Shared-config profile (empty = default chain)
	Region     string // Region override (IAM is global, STS is not)
	RoleARN    string // IAM role to assume (optional)
	ExternalID string // External ID for assume role (optional)
}

// AWSClient implements the Client interface using AWS SDK v2.
type AWSClient struct {
	cfg aws.Config
}

// NewClient creates a new AWS client for the given options.
func NewClient(ctx context.Context, opts Options) (*AWSClient, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	if opts.RoleARN != "" {
		stsClient := sts.NewFromConfig(cfg)
		creds := stscreds.NewAssumeRoleProvider(stsClient, opts.RoleARN, func(o *stscreds.AssumeRoleOptions) {
			if opts.ExternalID != "" {
				o.ExternalID = &opts.ExternalID
			}
			o.Duration = 1 * time.Hour
		})
		cfg.Credentials = aws.NewCredentialsCache(creds)
	}

	return &AWSClient{cfg: cfg}, nil
}

// GetCallerIdentity returns the account ID of the current credentials.
func (c *AWSClient) GetCallerIdentity(ctx context.Context) (string, error) {
	stsClient := sts.NewFromConfig(c.cfg)
	output, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting caller identity: %w", err)
	}
	return *output.Account, nil
}

// GetAccountAlias returns the account alias if set.
func (c *AWSClient) GetAccountAlias(ctx context.Context) (*string, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	output, err := iamClient.ListAccountAliases(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return nil, fmt.Errorf("listing account aliases: %w", err)
	}
	if len(output.AccountAliases) > 0 {
		return &output.AccountAliases[0], nil
	}
	return nil, nil
}

// ListUsers returns all IAM users in the account.
func (c *AWSClient) ListUsers(ctx context.Context) ([]User, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListUsersPaginator(iamClient, &iam.ListUsersInput{})

	var users []User
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}

		for _, u := range output.Users {
			user := User{
				Name: aws.ToString(u.UserName),
				ARN:  aws.ToString(u.Arn),
			}
			if u.CreateDate != nil {
				user.CreatedAt = *u.CreateDate
			}
			users = append(users, user)
		}
	}

	return users, nil
}

// ListAccessKeys returns all access keys for a user with last-used data.
func (c *AWSClient) ListAccessKeys(ctx context.Context, userName string) ([]AccessKeyFact, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListAccessKeysPaginator(iamClient, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})

	var facts []AccessKeyFact
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing access keys for %s: %w", userName, err)
		}

		for _, meta := range output.AccessKeyMetadata {
			fact := AccessKeyFact{
				UserName: aws.ToString(meta.UserName),
				KeyID:    aws.ToString(meta.AccessKeyId),
				Active:   meta.Status == "Active",
			}
			if meta.CreateDate != nil {
				fact.CreatedAt = *meta.CreateDate
			}

			if err := c.resolveLastUsed(ctx, iamClient, &fact); err != nil {
				return nil, err
			}

			facts = append(facts, fact)
		}
	}

	return facts, nil
}

// resolveLastUsed fills in the last-used fields for a single access key.
func (c *AWSClient) resolveLastUsed(ctx context.Context, iamClient *iam.Client, fact *AccessKeyFact) error {
	output, err := iamClient.GetAccessKeyLastUsed(ctx, &iam.GetAccessKeyLastUsedInput{
		AccessKeyId: aws.String(fact.KeyID),
	})
	if err != nil {
		return fmt.Errorf("getting last use of key %s: %w", fact.KeyID, err)
	}

	lastUsed := output.AccessKeyLastUsed
	if lastUsed == nil || lastUsed.LastUsedDate == nil {
		// Never used. The API reports "N/A" service and region here.
		return nil
	}

	fact.LastUsedAt = lastUsed.LastUsedDate
	fact.LastUsedService = sanitizeLastUsedField(aws.ToString(lastUsed.ServiceName))
	fact.LastUsedRegion = sanitizeLastUsedField(aws.ToString(lastUsed.Region))
	return nil
}

func sanitizeLastUsedField(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}

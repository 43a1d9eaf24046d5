package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cloudkeel/keyaudit/internal/audit"
)

// LoadPolicy reads staleness thresholds from a config file. Fields not
// present in the file keep their defaults.
func LoadPolicy(path string) (audit.Policy, error) {
	policy := audit.DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return audit.Policy{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	if err := v.Unmarshal(&policy); err != nil {
		return audit.Policy{}, fmt.Errorf("failed to parse policy file: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return audit.Policy{}, err
	}
	return policy, nil
}

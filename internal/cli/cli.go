// Package cli wires the keyaudit commands.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// CLI represents the command-line interface.
type CLI struct {
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI.
type Options struct {
	Output io.Writer // Report output (default stdout)
	LogOut io.Writer // Log output (default stderr)
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOut == nil {
		opts.LogOut = os.Stderr
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: opts.LogOut}).
		With().Timestamp().Logger()

	cli := &CLI{logger: logger}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keyaudit",
		Short:   "Audit IAM access keys for staleness and inactivity",
		Version: Version,
	}

	cmd.AddCommand(NewAssessCmd(cli.logger, output))

	return cmd
}

// keyaudit audits AWS IAM access keys for staleness and inactivity and
// emits a compliance report. It recommends rotation, it never rotates
// or deletes keys itself.
package main

import (
	"fmt"
	"os"

	"github.com/cloudkeel/keyaudit/internal/cli"
)

func main() {
	c := cli.NewCLI(cli.Options{
		Output: os.Stdout,
		LogOut: os.Stderr,
	})

	if err := c.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

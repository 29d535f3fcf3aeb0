package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/reload/cli"
)

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand("reload")
}

// Package cmd holds the reload subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/reload/cli"
)

// NewRootCmd assembles the reload command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"reload",
		"Restart commands when the files they depend on change",
	)
	root.Long = `reload watches the paths listed in its configuration file and restarts the
associated command whenever a changed file matches the path's glob pattern.
Each path has its own command; at most one instance of it runs at a time.`
	cli.SetVersionTemplate(root)

	root.AddCommand(NewRunCmd())
	root.AddCommand(NewValidateCmd())
	root.AddCommand(NewSchemaCmd())
	root.AddCommand(NewVersionCmd())

	// Plain `reload` is shorthand for `reload run`.
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runE(cmd, args)
	}
	root.Args = cobra.NoArgs
	cli.MarkReadsConfig(root)

	return root
}

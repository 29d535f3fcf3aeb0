package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/reload/config"
)

// NewSchemaCmd returns the command that prints the configuration schema.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Long: `Print the JSON Schema that reload validates its configuration against.
Editors with YAML language server support can use it for completion.

Examples:
  reload schema > reload.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

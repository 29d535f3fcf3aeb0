package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/reload/config"
)

// CommandOptions holds the options shared by every reload command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a new command with the standard reload flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigureLogging(GetOptions(cmd))
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the reload config file (default: search reload.yml, reload.yaml, reload.toml, config.yaml upwards)")

	// Apply styled help
	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts common options from a command
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// InitConfig resolves the configuration file path. An explicit path wins;
// otherwise the file is searched from the working directory upwards.
func InitConfig(configFile string) (string, error) {
	if configFile != "" {
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return config.FindConfigFile(cwd)
}

// LoadConfig resolves and loads the configuration named by opts.
func LoadConfig(opts CommandOptions) (*config.Config, error) {
	path, err := InitConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// Execute runs the root command and returns the process exit code.
func Execute(root *cobra.Command) int {
	ApplyStyledHelpRecursive(root)

	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}

	opts := GetOptions(cmd)
	NewErrorHandler(opts.Verbose).
		WithJSON(opts.JSONOutput).
		WithWriter(cmd.ErrOrStderr()).
		Handle(cmd, err)
	return 1
}

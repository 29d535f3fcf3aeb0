package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/reload/logging"
)

// ConfigureLogging applies the command-line flags to every component logger.
func ConfigureLogging(opts CommandOptions) {
	if opts.Verbose {
		logging.SetLevel(logrus.DebugLevel)
	}
}

// GetLogger returns the component logger for a command, configured from its
// flags.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	ConfigureLogging(GetOptions(cmd))
	return logging.NewLogger("cli").WithField("command", cmd.Name())
}

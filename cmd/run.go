package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grovetools/reload/cli"
	"github.com/grovetools/reload/internal/engine"
	"github.com/grovetools/reload/logging"
)

// NewRunCmd returns the command that watches and restarts.
func NewRunCmd() *cobra.Command {
	return cli.MarkReadsConfig(&cobra.Command{
		Use:   "run",
		Short: "Watch the configured paths and restart their commands",
		Long: `Start every configured command once, then restart it each time a file
matching its pattern changes. Runs until interrupted or until a rule fails.

Examples:
  # use reload.yml (or reload.yaml, reload.toml, config.yaml) from here upwards
  reload run

  # use an explicit file and show debug logs
  reload run -c dev/reload.toml -v`,
		Args: cobra.NoArgs,
		RunE: runE,
	})
}

func runE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runReload(ctx, cli.GetOptions(cmd), nil)
}

// runReload loads the configuration and runs the engine until ctx is done or
// a rule fails. A nil open uses real watchers and processes.
func runReload(ctx context.Context, opts cli.CommandOptions, open engine.OpenFunc) error {
	logger := logging.NewLogger("reload")

	cfg, err := cli.LoadConfig(opts)
	if err != nil {
		return err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}

	logger.WithField("config", cfg.File()).
		WithField("rules", len(rules)).
		Debug("Configuration loaded")

	eng := engine.New(rules, logger)
	if open != nil {
		eng.WithOpener(open)
	}

	if err := eng.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		logger.Info("Received stop signal, all commands stopped")
	}
	return nil
}

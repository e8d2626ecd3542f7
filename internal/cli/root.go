// Package cli wires the workoutadmin commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"workoutadmin/internal/config"
)

// Version is set at build time.
var Version = "0.1.0"

type configKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "workoutadmin",
		Short: "Workouts API and admin UI",
		Long: `workoutadmin serves the workouts JSON API backed by Postgres and a
server-rendered admin UI that pages through workouts via that API.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				cfg.App.LogLevel = logLevel
			}
			setupLogging(cfg, cmd.ErrOrStderr())

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error); overrides LOG_LEVEL")

	rootCmd.AddCommand(newAPICommand())
	rootCmd.AddCommand(newAdminCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// Execute runs the root command until it finishes or the process is signalled.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func getConfig(ctx context.Context) config.Cfg {
	if c, ok := ctx.Value(configKey{}).(config.Cfg); ok {
		return c
	}
	return config.Cfg{}
}

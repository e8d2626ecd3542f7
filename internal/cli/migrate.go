package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"workoutadmin/internal/store/postgres"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			if err := cfg.RequireDB(); err != nil {
				return err
			}
			version, err := postgres.Migrate(cfg.DB.DSN)
			if err != nil {
				return err
			}
			log.Info().Int64("version", version).Msg("database migrated")
			return nil
		},
	}
}

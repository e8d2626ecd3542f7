package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"workoutadmin/internal/config"
	httpx "workoutadmin/internal/http"
	"workoutadmin/internal/http/handlers"
	"workoutadmin/internal/services/exercises"
	"workoutadmin/internal/services/workouts"
	"workoutadmin/internal/store/postgres"
)

func newAPICommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the workouts JSON API",
		Example: `  # Serve on APP_PORT, applying pending migrations first
  workoutadmin api --migrate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAPI(cmd.Context(), getConfig(cmd.Context()), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")

	return cmd
}

func runAPI(ctx context.Context, cfg config.Cfg, migrate bool) error {
	if err := cfg.RequireDB(); err != nil {
		return err
	}
	if migrate {
		version, err := postgres.Migrate(cfg.DB.DSN)
		if err != nil {
			return err
		}
		log.Info().Int64("version", version).Msg("database migrated")
	}

	pool, err := postgres.Open(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:          cfg,
		WorkoutService:  workouts.NewService(postgres.NewWorkoutRepository(pool)),
		ExerciseService: exercises.NewService(postgres.NewExerciseRepository(pool)),
		HealthCheckers: map[string]handlers.HealthChecker{
			"database": postgres.PoolChecker{Pool: pool},
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("workouts API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

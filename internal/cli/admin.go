package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"workoutadmin/internal/client"
	"workoutadmin/internal/config"
	"workoutadmin/internal/http/handlers"
	"workoutadmin/internal/ui"
	"workoutadmin/internal/ui/query"
	"workoutadmin/internal/ui/tmpl"
)

const cacheNamespace = "workoutadmin"

func newAdminCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Serve the workouts admin UI",
		Long: `Serve the server-rendered admin UI. It reads and writes workouts through
the JSON API at API_BASE_URL and caches pages in Redis when REDIS_ADDR is set,
in process memory otherwise.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			if port != "" {
				cfg.UI.Port = port
			}
			return runAdmin(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to serve on (default: UI_PORT)")

	return cmd
}

func runAdmin(ctx context.Context, cfg config.Cfg) error {
	if err := cfg.RequireSession(); err != nil {
		return err
	}

	api := client.New(cfg.API)
	checkers := map[string]handlers.HealthChecker{"api": api}

	store, closeStore, err := openQueryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if c, ok := store.(handlers.HealthChecker); ok {
		checkers["cache"] = c
	}

	templates, err := tmpl.Load(Version)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	srv := ui.NewServer(ui.Config{
		API:            api,
		Queries:        query.NewClient(store, cfg.UI.CacheTTL, 0),
		Templates:      templates,
		Port:           cfg.UI.Port,
		SessionSecret:  cfg.UI.SessionSecret,
		SecureCookies:  !cfg.IsDev(),
		HealthCheckers: checkers,
	})
	return srv.Serve(ctx)
}

func openQueryStore(ctx context.Context, cfg config.Cfg) (query.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, caching pages in memory")
		return query.NewMemoryStore(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("caching pages in redis")
	return query.NewRedisStore(rdb, cacheNamespace), func() { _ = rdb.Close() }, nil
}

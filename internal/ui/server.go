// Package ui serves the server-rendered workouts admin.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"workoutadmin/internal/http/handlers"
	middlewarex "workoutadmin/internal/http/middleware"
	"workoutadmin/internal/ui/query"
	"workoutadmin/internal/ui/tmpl"
	"workoutadmin/internal/ui/workouts"
)

// Config holds what the admin server needs.
type Config struct {
	API            workouts.WorkoutAPI
	Queries        *query.Client
	Templates      *tmpl.Templates
	Port           string
	SessionSecret  string
	SecureCookies  bool
	HealthCheckers map[string]handlers.HealthChecker
}

// Server is the admin UI server.
type Server struct {
	cfg          Config
	sessionStore *sessions.CookieStore
}

func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.SecureCookies
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{cfg: cfg, sessionStore: sessionStore}
}

// Handler builds the admin router.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		chimw.RequestID,
		middlewarex.RequestLogger,
		chimw.Recoverer,
	)

	r.Get("/health", handlers.Health(s.cfg.HealthCheckers))

	if err := workouts.SetupRoutes(r, s.cfg.API, s.cfg.Queries, s.sessionStore, s.cfg.Templates); err != nil {
		return nil, fmt.Errorf("setup workouts routes: %w", err)
	}
	return r, nil
}

// Serve starts the admin server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	eg.Go(func() error {
		log.Info().Msgf("workouts admin listening on :%s", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("admin server stopping")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

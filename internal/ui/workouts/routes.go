package workouts

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"workoutadmin/internal/ui/query"
	"workoutadmin/internal/ui/tmpl"
)

// SetupRoutes registers the workouts feature routes.
func SetupRoutes(
	router chi.Router,
	api WorkoutAPI,
	queries *query.Client,
	sessionStore sessions.Store,
	templates *tmpl.Templates,
) error {
	handlers := NewHandlers(api, queries, sessionStore, templates)

	router.Get("/", handlers.Home)

	router.Route(listPath, func(r chi.Router) {
		r.Get("/", handlers.WorkoutsPage)
		r.Get("/table", handlers.WorkoutsTableSSE) // in-place page swap
		r.Post("/", handlers.CreateWorkout)
		r.Get("/{id}/edit", handlers.EditPage)
		r.Post("/{id}", handlers.UpdateWorkout)
		r.Post("/{id}/delete", handlers.DeleteWorkout)
	})

	return nil
}

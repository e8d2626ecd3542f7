package httpx

import (
	"net/http"

	"workoutadmin/internal/config"
	"workoutadmin/internal/http/handlers"
	middlewarex "workoutadmin/internal/http/middleware"
	"workoutadmin/internal/services/exercises"
	"workoutadmin/internal/services/workouts"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all dependencies for the API router
type RouterDependencies struct {
	Config          config.Cfg
	WorkoutService  *workouts.Service
	ExerciseService *exercises.Service
	HealthCheckers  map[string]handlers.HealthChecker
}

// NewRouter creates the JSON API router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middlewarex.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Sec.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health(deps.HealthCheckers))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.APITokenAuth(deps.Config))

		r.Route("/workouts", func(r chi.Router) {
			r.Get("/", handlers.ListWorkouts(deps.WorkoutService))
			r.Post("/", handlers.CreateWorkout(deps.WorkoutService))
			r.Get("/{id}", handlers.GetWorkout(deps.WorkoutService))
			r.Put("/{id}", handlers.UpdateWorkout(deps.WorkoutService))
			r.Delete("/{id}", handlers.DeleteWorkout(deps.WorkoutService))
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", handlers.ListExercises(deps.ExerciseService))
			r.Post("/", handlers.CreateExercise(deps.ExerciseService))
			r.Get("/{id}", handlers.GetExercise(deps.ExerciseService))
			r.Put("/{id}", handlers.UpdateExercise(deps.ExerciseService))
		})
	})

	return r
}

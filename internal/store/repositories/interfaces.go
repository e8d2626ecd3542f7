package repositories

import (
	"context"

	"workoutadmin/internal/domain/exercise"
	"workoutadmin/internal/domain/workout"

	"github.com/google/uuid"
)

// WorkoutRepository defines the contract for workout data access
type WorkoutRepository interface {
	Insert(ctx context.Context, w *workout.Workout) error
	Update(ctx context.Context, w *workout.Workout) error
	FindByID(ctx context.Context, id uuid.UUID) (*workout.Workout, error)
	List(ctx context.Context, limit, offset int) ([]*workout.Workout, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExerciseRepository defines the contract for exercise data access
type ExerciseRepository interface {
	Insert(ctx context.Context, e *exercise.Exercise) error
	Update(ctx context.Context, e *exercise.Exercise) error
	FindByID(ctx context.Context, id uuid.UUID) (*exercise.Exercise, error)
	List(ctx context.Context, limit, offset int) ([]*exercise.Exercise, error)
	Count(ctx context.Context) (int, error)
}

package workouts

import (
	"context"
	"errors"

	"workoutadmin/internal/domain/workout"
	"workoutadmin/internal/services/data"
	"workoutadmin/internal/store/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles workout reads and mutations
type Service struct {
	repo repositories.WorkoutRepository
}

// NewService creates a new workout service
func NewService(repo repositories.WorkoutRepository) *Service {
	return &Service{repo: repo}
}

// List returns one skip/limit window of workouts and the total count
func (s *Service) List(ctx context.Context, req data.ListRequest) (*data.Page[*workout.Workout], error) {
	req.Validate()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, &data.ServiceError{Op: "count_workouts", Err: err}
	}
	items, err := s.repo.List(ctx, req.Limit, req.Skip)
	if err != nil {
		return nil, &data.ServiceError{Op: "list_workouts", Err: err}
	}
	return &data.Page[*workout.Workout]{Data: items, Count: count}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*workout.Workout, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("get_workout", err)
	}
	return w, nil
}

func (s *Service) Create(ctx context.Context, in workout.CreateInput) (*workout.Workout, error) {
	w, err := workout.New(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, w); err != nil {
		return nil, &data.ServiceError{Op: "create_workout", Err: err}
	}
	log.Info().Str("workout_id", w.ID.String()).Msg("workout created")
	return w, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in workout.UpdateInput) (*workout.Workout, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("update_workout", err)
	}
	if err := w.Apply(in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, wrap("update_workout", err)
	}
	log.Info().Str("workout_id", id.String()).Msg("workout updated")
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrap("delete_workout", err)
	}
	log.Info().Str("workout_id", id.String()).Msg("workout deleted")
	return nil
}

// not-found passes through unwrapped so handlers can match it directly
func wrap(op string, err error) error {
	if errors.Is(err, workout.ErrNotFound) {
		return err
	}
	return &data.ServiceError{Op: op, Err: err}
}

package exercises

import (
	"context"
	"errors"

	"workoutadmin/internal/domain/exercise"
	"workoutadmin/internal/services/data"
	"workoutadmin/internal/store/repositories"

	"github.com/google/uuid"
)

// Service handles exercise reads and mutations
type Service struct {
	repo repositories.ExerciseRepository
}

func NewService(repo repositories.ExerciseRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req data.ListRequest) (*data.Page[*exercise.Exercise], error) {
	req.Validate()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, &data.ServiceError{Op: "count_exercises", Err: err}
	}
	items, err := s.repo.List(ctx, req.Limit, req.Skip)
	if err != nil {
		return nil, &data.ServiceError{Op: "list_exercises", Err: err}
	}
	return &data.Page[*exercise.Exercise]{Data: items, Count: count}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*exercise.Exercise, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("get_exercise", err)
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, in exercise.Input) (*exercise.Exercise, error) {
	e, err := exercise.New(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, &data.ServiceError{Op: "create_exercise", Err: err}
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in exercise.Input) (*exercise.Exercise, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrap("update_exercise", err)
	}
	if err := e.Apply(in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, wrap("update_exercise", err)
	}
	return e, nil
}

func wrap(op string, err error) error {
	if errors.Is(err, exercise.ErrNotFound) {
		return err
	}
	return &data.ServiceError{Op: op, Err: err}
}

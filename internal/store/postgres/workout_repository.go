package postgres

import (
	"context"
	"errors"

	"workoutadmin/internal/domain/workout"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workoutColumns = `id, title, description, exercises, owner_id, created_at, updated_at`

// workoutRepository implements WorkoutRepository on top of a pgx pool
type workoutRepository struct {
	db *pgxpool.Pool
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *pgxpool.Pool) *workoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Insert(ctx context.Context, w *workout.Workout) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO workouts (id, title, description, exercises, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.Title, w.Description, w.Exercises, w.OwnerID, w.CreatedAt, w.UpdatedAt)
	return err
}

func (r *workoutRepository) Update(ctx context.Context, w *workout.Workout) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE workouts
		SET title = $1, description = $2, exercises = $3, updated_at = $4
		WHERE id = $5`,
		w.Title, w.Description, w.Exercises, w.UpdatedAt, w.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*workout.Workout, error) {
	row := r.db.QueryRow(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE id = $1`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workout.ErrNotFound
	}
	return w, err
}

// List returns one window of workouts, oldest first so pages stay stable
func (r *workoutRepository) List(ctx context.Context, limit, offset int) ([]*workout.Workout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+workoutColumns+`
		FROM workouts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []*workout.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *workoutRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM workouts`).Scan(&n)
	return n, err
}

func (r *workoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrNotFound
	}
	return nil
}

// pgx.Rows satisfies pgx.Row, so one scanner serves both paths
func scanWorkout(row pgx.Row) (*workout.Workout, error) {
	var w workout.Workout
	err := row.Scan(&w.ID, &w.Title, &w.Description, &w.Exercises, &w.OwnerID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if w.Exercises == nil {
		w.Exercises = workout.Exercises{}
	}
	return &w, nil
}

package postgres

import (
	"context"
	"errors"

	"workoutadmin/internal/domain/exercise"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type exerciseRepository struct {
	db *pgxpool.Pool
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *pgxpool.Pool) *exerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Insert(ctx context.Context, e *exercise.Exercise) error {
	_, err := r.db.Exec(ctx, `INSERT INTO exercises (id, title, description) VALUES ($1, $2, $3)`,
		e.ID, e.Title, e.Description)
	return err
}

func (r *exerciseRepository) Update(ctx context.Context, e *exercise.Exercise) error {
	tag, err := r.db.Exec(ctx, `UPDATE exercises SET title = $1, description = $2 WHERE id = $3`,
		e.Title, e.Description, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return exercise.ErrNotFound
	}
	return nil
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uuid.UUID) (*exercise.Exercise, error) {
	var e exercise.Exercise
	err := r.db.QueryRow(ctx, `SELECT id, title, description FROM exercises WHERE id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, exercise.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exerciseRepository) List(ctx context.Context, limit, offset int) ([]*exercise.Exercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description
		FROM exercises
		ORDER BY title NULLS LAST, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*exercise.Exercise{}
	for rows.Next() {
		var e exercise.Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *exerciseRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM exercises`).Scan(&n)
	return n, err
}

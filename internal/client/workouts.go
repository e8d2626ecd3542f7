package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"workoutadmin/internal/domain/workout"

	"github.com/google/uuid"
)

// WorkoutsPublic is one page of workouts as returned by the API
type WorkoutsPublic struct {
	Data  []workout.Workout `json:"data"`
	Count int               `json:"count"`
}

// ReadWorkouts fetches the skip/limit window of workouts
func (c *Client) ReadWorkouts(ctx context.Context, skip, limit int) (*WorkoutsPublic, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var out WorkoutsPublic
	if err := c.get(ctx, "/api/v1/workouts/?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("read workouts: %w", err)
	}
	if out.Data == nil {
		out.Data = []workout.Workout{}
	}
	return &out, nil
}

func (c *Client) ReadWorkout(ctx context.Context, id uuid.UUID) (*workout.Workout, error) {
	var out workout.Workout
	if err := c.get(ctx, "/api/v1/workouts/"+id.String(), &out); err != nil {
		return nil, fmt.Errorf("read workout: %w", err)
	}
	return &out, nil
}

func (c *Client) CreateWorkout(ctx context.Context, in workout.CreateInput) (*workout.Workout, error) {
	var out workout.Workout
	if err := c.do(ctx, http.MethodPost, "/api/v1/workouts/", in, &out); err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return &out, nil
}

func (c *Client) UpdateWorkout(ctx context.Context, id uuid.UUID, in workout.UpdateInput) (*workout.Workout, error) {
	var out workout.Workout
	if err := c.do(ctx, http.MethodPut, "/api/v1/workouts/"+id.String(), in, &out); err != nil {
		return nil, fmt.Errorf("update workout: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/workouts/"+id.String(), nil, nil); err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	return nil
}

// Check pings the API health endpoint; it satisfies the health checker interface.
func (c *Client) Check(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

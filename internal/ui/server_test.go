package ui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutadmin/internal/client"
	"workoutadmin/internal/domain/workout"
	"workoutadmin/internal/http/handlers"
	"workoutadmin/internal/ui/query"
	"workoutadmin/internal/ui/tmpl"
)

type emptyAPI struct{}

func (emptyAPI) ReadWorkouts(context.Context, int, int) (*client.WorkoutsPublic, error) {
	return &client.WorkoutsPublic{Data: []workout.Workout{}}, nil
}
func (emptyAPI) ReadWorkout(context.Context, uuid.UUID) (*workout.Workout, error) {
	return nil, &client.APIError{StatusCode: http.StatusNotFound}
}
func (emptyAPI) CreateWorkout(context.Context, workout.CreateInput) (*workout.Workout, error) {
	return nil, errors.New("not supported")
}
func (emptyAPI) UpdateWorkout(context.Context, uuid.UUID, workout.UpdateInput) (*workout.Workout, error) {
	return nil, errors.New("not supported")
}
func (emptyAPI) DeleteWorkout(context.Context, uuid.UUID) error { return nil }

type checkFunc func(ctx context.Context) error

func (f checkFunc) Check(ctx context.Context) error { return f(ctx) }

func newTestServer(t *testing.T, apiHealth error) http.Handler {
	t.Helper()
	templates, err := tmpl.Load("test")
	require.NoError(t, err)

	srv := NewServer(Config{
		API:           emptyAPI{},
		Queries:       query.NewClient(query.NewMemoryStore(), time.Minute, 0),
		Templates:     templates,
		Port:          "0",
		SessionSecret: "test-secret-key-32-bytes-long!!",
		HealthCheckers: map[string]handlers.HealthChecker{
			"api": checkFunc(func(context.Context) error { return apiHealth }),
		},
	})
	h, err := srv.Handler()
	require.NoError(t, err)
	return h
}

func TestServer_Routes(t *testing.T) {
	h := newTestServer(t, nil)

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/", http.StatusFound},
		{"/workouts", http.StatusOK},
		{"/workouts?page=2", http.StatusOK},
		{"/health", http.StatusOK},
		{"/workouts/" + uuid.NewString() + "/edit", http.StatusNotFound},
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
		assert.Equal(t, tt.wantStatus, rec.Code, tt.target)
	}
}

func TestServer_HealthReportsAPI(t *testing.T) {
	h := newTestServer(t, errors.New("connection refused"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestServer_ServeStopsWithContext(t *testing.T) {
	templates, err := tmpl.Load("test")
	require.NoError(t, err)
	srv := NewServer(Config{
		API:           emptyAPI{},
		Queries:       query.NewClient(query.NewMemoryStore(), time.Minute, 0),
		Templates:     templates,
		Port:          "0",
		SessionSecret: "test-secret-key-32-bytes-long!!",
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

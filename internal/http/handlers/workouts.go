package handlers

import (
	"encoding/json"
	"net/http"

	"workoutadmin/internal/domain/workout"
	"workoutadmin/internal/services/workouts"
)

const workoutNotFound = "Workout not found"

// ListWorkouts handles GET /workouts/?skip=&limit=
func ListWorkouts(svc *workouts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), parseListRequest(r))
		if err != nil {
			writeServiceError(w, err, workoutNotFound)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetWorkout(svc *workouts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, workoutNotFound)
			return
		}
		wk, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, workoutNotFound)
			return
		}
		writeJSON(w, http.StatusOK, wk)
	}
}

func CreateWorkout(svc *workouts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in workout.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		wk, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err, workoutNotFound)
			return
		}
		writeJSON(w, http.StatusOK, wk)
	}
}

func UpdateWorkout(svc *workouts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, workoutNotFound)
			return
		}
		var in workout.UpdateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		wk, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, err, workoutNotFound)
			return
		}
		writeJSON(w, http.StatusOK, wk)
	}
}

func DeleteWorkout(svc *workouts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, workoutNotFound)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err, workoutNotFound)
			return
		}
		writeJSON(w, http.StatusOK, Message{Message: "Workout deleted successfully"})
	}
}

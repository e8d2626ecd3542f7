package handlers

import (
	"encoding/json"
	"net/http"

	"workoutadmin/internal/domain/exercise"
	"workoutadmin/internal/services/exercises"
)

const exerciseNotFound = "Exercise not found"

func ListExercises(svc *exercises.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), parseListRequest(r))
		if err != nil {
			writeServiceError(w, err, exerciseNotFound)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetExercise(svc *exercises.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, exerciseNotFound)
			return
		}
		e, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, exerciseNotFound)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func CreateExercise(svc *exercises.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in exercise.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		e, err := svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err, exerciseNotFound)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func UpdateExercise(svc *exercises.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			writeError(w, http.StatusNotFound, exerciseNotFound)
			return
		}
		var in exercise.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		e, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, err, exerciseNotFound)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

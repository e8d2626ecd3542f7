package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"workoutadmin/internal/domain/exercise"
	"workoutadmin/internal/domain/workout"
	"workoutadmin/internal/services/data"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Message is the generic acknowledgement body
type Message struct {
	Message string `json:"message"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}

// writeServiceError maps domain and service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	var wve *workout.ValidationError
	var eve *exercise.ValidationError
	var se *data.ServiceError

	switch {
	case errors.Is(err, workout.ErrNotFound), errors.Is(err, exercise.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.As(err, &wve), errors.As(err, &eve):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &se):
		log.Error().Err(err).Str("op", se.Op).Msg("service failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		log.Error().Err(err).Msg("unexpected failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseListRequest parses skip/limit query parameters into ListRequest
func parseListRequest(r *http.Request) data.ListRequest {
	req := data.ListRequest{}

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Limit = n
		}
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Skip = n
		}
	}

	return req
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

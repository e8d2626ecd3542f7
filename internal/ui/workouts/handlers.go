// Package workouts serves the paginated workouts list and its row actions.
package workouts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
	"github.com/starfederation/datastar-go/datastar"

	"workoutadmin/internal/client"
	"workoutadmin/internal/domain/workout"
	"workoutadmin/internal/ui/query"
	"workoutadmin/internal/ui/tmpl"
)

const (
	sessionName = "workoutadmin"
	sessionKey  = "sid"
)

// WorkoutAPI is the part of the workouts API the admin UI talks to.
type WorkoutAPI interface {
	WorkoutReader
	ReadWorkout(ctx context.Context, id uuid.UUID) (*workout.Workout, error)
	CreateWorkout(ctx context.Context, in workout.CreateInput) (*workout.Workout, error)
	UpdateWorkout(ctx context.Context, id uuid.UUID, in workout.UpdateInput) (*workout.Workout, error)
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
}

// Handlers provides HTTP handlers for the workouts feature.
type Handlers struct {
	api       WorkoutAPI
	queries   *query.Client
	sessions  sessions.Store
	tracker   *Tracker
	templates *tmpl.Templates
}

func NewHandlers(api WorkoutAPI, queries *query.Client, store sessions.Store, templates *tmpl.Templates) *Handlers {
	return &Handlers{
		api:       api,
		queries:   queries,
		sessions:  store,
		tracker:   NewTracker(),
		templates: templates,
	}
}

// AddForm is the state of the Add Workout form.
type AddForm struct {
	Title       string
	Description string
	Exercises   string
	ReturnTo    string
	Error       string
}

type listPage struct {
	Title string
	View  View
	Form  AddForm
}

type editPage struct {
	Title string
	Form  ActionsMenu
	Error string
}

// WorkoutsPage renders the full list page for the page in the URL.
func (h *Handlers) WorkoutsPage(w http.ResponseWriter, r *http.Request) {
	search := ParseSearch(r.URL.Query())
	h.sessionID(w, r)

	data, err := query.Fetch(r.Context(), h.queries, WorkoutsQueryOptions(h.api, search.Page))
	if err != nil {
		log.Error().Err(err).Int("page", search.Page).Msg("failed to load workouts")
	}
	view := Resolve(search, QueryState{Data: data, Err: err})

	h.renderList(w, http.StatusOK, view, AddForm{ReturnTo: search.Current()})
}

// WorkoutsTableSSE swaps the table to another page in place. While the new
// page loads, the rows of the page the user came from stay on screen dimmed.
// A response for a page the user has already navigated away from is dropped.
func (h *Handlers) WorkoutsTableSSE(w http.ResponseWriter, r *http.Request) {
	search := ParseSearch(r.URL.Query())
	sid := h.sessionID(w, r)
	gen := h.tracker.Begin(sid)

	var signals struct {
		Page int `json:"page"`
	}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		log.Debug().Err(err).Str("session", sid).Msg("ignoring unreadable signals")
	}

	sse := datastar.NewSSE(w, r)
	ctx := r.Context()

	ok, err := h.tracker.Publish(sid, gen, func() error {
		return h.patchTable(sse, h.interimState(ctx, search.Page, signals.Page), search)
	})
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if !ok {
		log.Debug().Str("session", sid).Int("page", search.Page).Msg("superseded before placeholder")
		return
	}

	data, fetchErr := query.Fetch(ctx, h.queries, WorkoutsQueryOptions(h.api, search.Page))

	ok, err = h.tracker.Publish(sid, gen, func() error {
		if fetchErr != nil {
			log.Error().Err(fetchErr).Int("page", search.Page).Msg("failed to load workouts")
		}
		if err := h.patchTable(sse, QueryState{Data: data, Err: fetchErr}, search); err != nil {
			return err
		}
		if err := sse.MarshalAndPatchSignals(map[string]any{"page": search.Page}); err != nil {
			return err
		}
		href, _ := json.Marshal(search.Current())
		return sse.ExecuteScript(fmt.Sprintf("history.pushState(null, '', %s)", href))
	})
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if !ok {
		log.Debug().Str("session", sid).Int("page", search.Page).Msg("dropping superseded page result")
	}
}

// interimState is what the table shows before the fetch returns: the page's
// own cached result if any, else the previous page's rows as placeholder.
func (h *Handlers) interimState(ctx context.Context, page, prevPage int) QueryState {
	if own, ok := query.Peek[*client.WorkoutsPublic](ctx, h.queries, PageKey(page)); ok && own != nil {
		return QueryState{Data: own}
	}
	if prevPage >= 1 && prevPage != page {
		if prev, ok := query.Peek[*client.WorkoutsPublic](ctx, h.queries, PageKey(prevPage)); ok && prev != nil {
			return QueryState{Data: prev, IsLoading: true, IsPlaceholderData: true}
		}
	}
	return QueryState{IsLoading: true}
}

func (h *Handlers) patchTable(sse *datastar.ServerSentEventGenerator, st QueryState, search Search) error {
	var buf bytes.Buffer
	if err := h.templates.ExecutePartial(&buf, "workouts_table", Resolve(search, st)); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return sse.PatchElements(buf.String())
}

// CreateWorkout handles the Add Workout form.
func (h *Handlers) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := AddForm{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Exercises:   r.PostForm.Get("exercises"),
		ReturnTo:    safeReturn(r.PostForm.Get("return_to")),
	}

	in, err := createInput(form)
	if err == nil {
		_, err = h.api.CreateWorkout(r.Context(), in)
	}
	if err != nil {
		form.Error = formError(err)
		search := searchFromReturn(form.ReturnTo)
		data, ferr := query.Fetch(r.Context(), h.queries, WorkoutsQueryOptions(h.api, search.Page))
		h.renderList(w, mutationStatus(err), Resolve(search, QueryState{Data: data, Err: ferr}), form)
		return
	}

	log.Info().Str("title", in.Title).Msg("workout created")
	h.invalidate(r.Context())
	http.Redirect(w, r, form.ReturnTo, http.StatusSeeOther)
}

// EditPage renders the edit form for one workout outside the list.
func (h *Handlers) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	wk, err := h.api.ReadWorkout(r.Context(), id)
	if err != nil {
		if client.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("workout_id", id.String()).Msg("failed to read workout")
		http.Error(w, "failed to load workout", http.StatusBadGateway)
		return
	}

	returnTo := safeReturn(r.URL.Query().Get("return_to"))
	h.renderEdit(w, http.StatusOK, newRow(wk, 1, returnTo).Menu, "")
}

// UpdateWorkout handles the edit form, from the row menu or the edit page.
func (h *Handlers) UpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := ActionsMenu{
		ID:            id.String(),
		Title:         r.PostForm.Get("title"),
		Description:   r.PostForm.Get("description"),
		ExercisesJSON: r.PostForm.Get("exercises"),
		ReturnTo:      safeReturn(r.PostForm.Get("return_to")),
	}

	in, err := updateInput(form)
	if err == nil {
		_, err = h.api.UpdateWorkout(r.Context(), id, in)
	}
	if err != nil {
		if client.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		h.renderEdit(w, mutationStatus(err), form, formError(err))
		return
	}

	log.Info().Str("workout_id", id.String()).Msg("workout updated")
	h.invalidate(r.Context())
	http.Redirect(w, r, form.ReturnTo, http.StatusSeeOther)
}

// DeleteWorkout handles the row menu's delete entry. Only the id is needed.
func (h *Handlers) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	returnTo := safeReturn(r.FormValue("return_to"))

	if err := h.api.DeleteWorkout(r.Context(), id); err != nil && !client.IsNotFound(err) {
		log.Error().Err(err).Str("workout_id", id.String()).Msg("failed to delete workout")
		http.Error(w, "failed to delete workout", http.StatusBadGateway)
		return
	}

	log.Info().Str("workout_id", id.String()).Msg("workout deleted")
	h.invalidate(r.Context())
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// Home sends the bare root to the list.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, listPath, http.StatusFound)
}

func (h *Handlers) invalidate(ctx context.Context) {
	if err := h.queries.Invalidate(ctx, queryScope); err != nil {
		log.Warn().Err(err).Msg("workouts cache not invalidated")
	}
}

// sessionID returns the browser's session id, issuing one on first visit.
// It must run before anything is written to w.
func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	sess, err := h.sessions.Get(r, sessionName)
	if err != nil {
		log.Debug().Err(err).Msg("session cookie rejected, starting a new one")
	}
	if sess == nil {
		return uuid.NewString()
	}
	if id, ok := sess.Values[sessionKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	sess.Values[sessionKey] = id
	if err := sess.Save(r, w); err != nil {
		log.Warn().Err(err).Msg("failed to save session")
	}
	return id
}

func (h *Handlers) renderList(w http.ResponseWriter, status int, view View, form AddForm) {
	h.render(w, status, "workouts.html", listPage{Title: "Workouts", View: view, Form: form})
}

func (h *Handlers) renderEdit(w http.ResponseWriter, status int, form ActionsMenu, msg string) {
	h.render(w, status, "workout_edit.html", editPage{Title: "Edit Workout", Form: form, Error: msg})
}

func (h *Handlers) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, page, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func createInput(form AddForm) (workout.CreateInput, error) {
	ex, err := workout.ParseExercises(form.Exercises)
	if err != nil {
		return workout.CreateInput{}, err
	}
	in := workout.CreateInput{Title: form.Title, Exercises: ex}
	if d := strings.TrimSpace(form.Description); d != "" {
		in.Description = &d
	}
	return in, in.Validate()
}

func updateInput(form ActionsMenu) (workout.UpdateInput, error) {
	ex, err := workout.ParseExercises(form.ExercisesJSON)
	if err != nil {
		return workout.UpdateInput{}, err
	}
	title := form.Title
	desc := strings.TrimSpace(form.Description)
	in := workout.UpdateInput{Title: &title, Description: &desc, Exercises: ex}
	return in, in.Validate()
}

func searchFromReturn(returnTo string) Search {
	_, rawQuery, _ := strings.Cut(returnTo, "?")
	q, _ := url.ParseQuery(rawQuery)
	return ParseSearch(q)
}

func formError(err error) string {
	var ve *workout.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var ae *client.APIError
	if errors.As(err, &ae) && ae.Detail != "" {
		return ae.Detail
	}
	return "Something went wrong, try again."
}

func mutationStatus(err error) int {
	var ve *workout.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity
	}
	var ae *client.APIError
	if errors.As(err, &ae) && ae.StatusCode >= 400 && ae.StatusCode < 500 {
		return ae.StatusCode
	}
	return http.StatusBadGateway
}

package workouts

import (
	"encoding/json"

	"workoutadmin/internal/client"
	"workoutadmin/internal/domain/workout"
)

// QueryState is what the query layer knows about the current page.
type QueryState struct {
	Data              *client.WorkoutsPublic
	IsLoading         bool
	IsPlaceholderData bool // Data belongs to a previous page
	Err               error
}

type ViewKind int

const (
	ViewPending ViewKind = iota
	ViewError
	ViewEmpty
	ViewTable
)

// View is everything the table template needs.
type View struct {
	Kind       ViewKind
	Search     Search
	Rows       []Row
	Pagination Pagination
	Error      string
	RetryHref  string
}

func (v View) IsPending() bool { return v.Kind == ViewPending }
func (v View) IsError() bool   { return v.Kind == ViewError }
func (v View) IsEmpty() bool   { return v.Kind == ViewEmpty }

// Row is one rendered workout.
type Row struct {
	ID          string
	Title       string
	Description string
	Exercises   string
	Muted       bool    // no description: the exercises cell is greyed out
	Opacity     float64 // 0.5 while the row belongs to a previous page
	Menu        ActionsMenu
}

// ActionsMenu feeds the per-row menu: edit gets the whole record, delete only the id.
type ActionsMenu struct {
	ID            string
	Title         string
	Description   string
	ExercisesJSON string
	ReturnTo      string
}

type PageLink struct {
	Page       int
	Href       string
	StreamHref string
	Current    bool
	Ellipsis   bool
}

type Pagination struct {
	Count      int
	PageSize   int
	Page       int
	TotalPages int
	Prev       *PageLink
	Next       *PageLink
	Pages      []PageLink
}

// Resolve picks the view for st. Order: loading without placeholder data,
// error, empty, table.
func Resolve(search Search, st QueryState) View {
	v := View{Search: search}

	switch {
	case st.IsLoading && st.Data == nil:
		v.Kind = ViewPending
		return v
	case st.Err != nil:
		v.Kind = ViewError
		v.Error = st.Err.Error()
		v.RetryHref = search.Current()
		return v
	case st.Data == nil:
		v.Kind = ViewPending
		return v
	}

	items := st.Data.Data
	if len(items) > PerPage {
		items = items[:PerPage]
	}
	if len(items) == 0 {
		v.Kind = ViewEmpty
		return v
	}

	opacity := 1.0
	if st.IsPlaceholderData {
		opacity = 0.5
	}

	v.Kind = ViewTable
	v.Rows = make([]Row, 0, len(items))
	for i := range items {
		v.Rows = append(v.Rows, newRow(&items[i], opacity, search.Current()))
	}
	v.Pagination = paginate(search, st.Data.Count)
	return v
}

func newRow(w *workout.Workout, opacity float64, returnTo string) Row {
	desc := w.DescriptionOrEmpty()
	return Row{
		ID:          w.ID.String(),
		Title:       w.Title,
		Description: desc,
		Exercises:   StringifyExercises(w.Exercises),
		Muted:       desc == "",
		Opacity:     opacity,
		Menu: ActionsMenu{
			ID:            w.ID.String(),
			Title:         w.Title,
			Description:   desc,
			ExercisesJSON: prettyJSON(w.Exercises),
			ReturnTo:      returnTo,
		},
	}
}

// StringifyExercises renders the exercises document without interpreting it.
// Documents shaped {"exercises": ...} show only the inner value.
func StringifyExercises(ex workout.Exercises) string {
	var v any = ex
	if inner, ok := ex["exercises"]; ok {
		v = inner
	}
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func prettyJSON(ex workout.Exercises) string {
	if ex == nil {
		ex = workout.Exercises{}
	}
	b, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// paginate builds first/last, the current page and its neighbours, with
// ellipsis markers for the gaps.
func paginate(search Search, count int) Pagination {
	total := (count + PerPage - 1) / PerPage
	if total < 1 {
		total = 1
	}
	cur := search.Page

	link := func(p int) PageLink {
		return PageLink{Page: p, Href: search.Href(p), StreamHref: search.StreamHref(p), Current: p == cur}
	}

	p := Pagination{Count: count, PageSize: PerPage, Page: cur, TotalPages: total}
	if cur > 1 {
		prev := link(min(cur-1, total))
		p.Prev = &prev
	}
	if cur < total {
		next := link(cur + 1)
		p.Next = &next
	}

	last := 0
	for i := 1; i <= total; i++ {
		if i != 1 && i != total && (i < cur-1 || i > cur+1) {
			continue
		}
		if last != 0 && i-last > 1 {
			p.Pages = append(p.Pages, PageLink{Ellipsis: true})
		}
		p.Pages = append(p.Pages, link(i))
		last = i
	}
	return p
}

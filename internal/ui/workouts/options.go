package workouts

import (
	"context"
	"strconv"

	"workoutadmin/internal/client"
	"workoutadmin/internal/ui/query"
)

const queryScope = "workouts"

// WorkoutReader is the read side of the workouts API.
type WorkoutReader interface {
	ReadWorkouts(ctx context.Context, skip, limit int) (*client.WorkoutsPublic, error)
}

// Window converts a page number into the API's skip/limit pair.
func Window(page int) (skip, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PerPage, PerPage
}

// PageKey is the cache key for one page; pages never share an entry.
func PageKey(page int) string {
	return query.Key(queryScope, "page="+strconv.Itoa(page))
}

// WorkoutsQueryOptions builds the keyed fetch for one page of workouts.
func WorkoutsQueryOptions(api WorkoutReader, page int) query.Options[*client.WorkoutsPublic] {
	skip, limit := Window(page)
	return query.Options[*client.WorkoutsPublic]{
		Key: PageKey(page),
		Fn: func(ctx context.Context) (*client.WorkoutsPublic, error) {
			return api.ReadWorkouts(ctx, skip, limit)
		},
	}
}

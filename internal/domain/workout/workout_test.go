package workout

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		in        CreateInput
		wantField string
	}{
		{name: "valid", in: CreateInput{Title: "Leg day", Description: strPtr("squats")}},
		{name: "blank title", in: CreateInput{Title: "   "}, wantField: "title"},
		{name: "long title", in: CreateInput{Title: strings.Repeat("a", 256)}, wantField: "title"},
		{name: "long description", in: CreateInput{Title: "x", Description: strPtr(strings.Repeat("d", 256))}, wantField: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.in)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, w.ID)
				assert.NotNil(t, w.Exercises)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestNew_BlankDescriptionIsNil(t *testing.T) {
	w, err := New(CreateInput{Title: "Push", Description: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, w.Description)
	assert.Equal(t, "", w.DescriptionOrEmpty())
}

func TestApply(t *testing.T) {
	w, err := New(CreateInput{Title: "Pull", Exercises: Exercises{"exercises": []any{"row"}}})
	require.NoError(t, err)
	created := w.UpdatedAt

	require.NoError(t, w.Apply(UpdateInput{Description: strPtr("back")}))
	assert.Equal(t, "Pull", w.Title)
	assert.Equal(t, "back", w.DescriptionOrEmpty())
	assert.Equal(t, Exercises{"exercises": []any{"row"}}, w.Exercises)
	assert.False(t, w.UpdatedAt.Before(created))

	assert.Error(t, w.Apply(UpdateInput{Title: strPtr("")}))
	assert.Equal(t, "Pull", w.Title)
}

func TestParseExercises(t *testing.T) {
	ex, err := ParseExercises("")
	require.NoError(t, err)
	assert.Empty(t, ex)

	ex, err = ParseExercises(`{"exercises":[{"name":"squat","reps":5}]}`)
	require.NoError(t, err)
	assert.Contains(t, ex, "exercises")

	_, err = ParseExercises(`[1,2]`)
	assert.Error(t, err)
}

func TestUpdateInput_Validate(t *testing.T) {
	blank := "   "
	long := strings.Repeat("x", MaxDescriptionLen+1)
	ok := "Leg day"

	assert.NoError(t, UpdateInput{}.Validate())
	assert.NoError(t, UpdateInput{Title: &ok}.Validate())

	var ve *ValidationError
	require.ErrorAs(t, UpdateInput{Title: &blank}.Validate(), &ve)
	assert.Equal(t, "title", ve.Field)
	require.ErrorAs(t, UpdateInput{Description: &long}.Validate(), &ve)
	assert.Equal(t, "description", ve.Field)
}

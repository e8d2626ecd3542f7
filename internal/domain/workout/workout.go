package workout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 255
)

// ErrNotFound is returned by repositories when no workout matches the id.
var ErrNotFound = errors.New("workout not found")

// Exercises is the free-form JSON document attached to a workout. Its shape
// is owned by whoever writes it; this package only guarantees it is an object.
type Exercises map[string]any

// Workout represents a stored workout plan
type Workout struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Exercises   Exercises  `json:"exercises"`
	OwnerID     *uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInput carries the fields accepted when creating a workout
type CreateInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Exercises   Exercises  `json:"exercises"`
	OwnerID     *uuid.UUID `json:"owner_id,omitempty"`
}

// UpdateInput carries a partial update; nil fields are left untouched
type UpdateInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Exercises   Exercises `json:"exercises,omitempty"`
}

// Validate checks the fields New would reject.
func (in CreateInput) Validate() error {
	if err := validateTitle(strings.TrimSpace(in.Title)); err != nil {
		return err
	}
	return validateDescription(in.Description)
}

// Validate checks the fields Apply would reject.
func (in UpdateInput) Validate() error {
	if in.Title != nil {
		if err := validateTitle(strings.TrimSpace(*in.Title)); err != nil {
			return err
		}
	}
	return validateDescription(in.Description)
}

// New creates a new workout with validation
func New(in CreateInput) (*Workout, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)

	exercises := in.Exercises
	if exercises == nil {
		exercises = Exercises{}
	}

	now := time.Now().UTC()
	return &Workout{
		ID:          uuid.New(),
		Title:       title,
		Description: normalizeDescription(in.Description),
		Exercises:   exercises,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply merges a partial update into w
func (w *Workout) Apply(in UpdateInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		w.Title = title
	}
	if in.Description != nil {
		if err := validateDescription(in.Description); err != nil {
			return err
		}
		w.Description = normalizeDescription(in.Description)
	}
	if in.Exercises != nil {
		w.Exercises = in.Exercises
	}
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// DescriptionOrEmpty is the display form of the optional description.
func (w *Workout) DescriptionOrEmpty() string {
	if w.Description == nil {
		return ""
	}
	return *w.Description
}

// ParseExercises decodes a user-supplied JSON object. Blank input is an empty object.
func ParseExercises(raw string) (Exercises, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Exercises{}, nil
	}
	var ex Exercises
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return nil, &ValidationError{Field: "exercises", Message: "must be a JSON object"}
	}
	if ex == nil {
		ex = Exercises{}
	}
	return ex, nil
}

func validateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("at most %d characters", MaxTitleLen)}
	}
	return nil
}

func validateDescription(desc *string) error {
	if desc != nil && utf8.RuneCountInString(*desc) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Message: fmt.Sprintf("at most %d characters", MaxDescriptionLen)}
	}
	return nil
}

func normalizeDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	d := strings.TrimSpace(*desc)
	if d == "" {
		return nil
	}
	return &d
}

// ValidationError reports a rejected field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

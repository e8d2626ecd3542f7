package exercise

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const maxFieldLen = 255

var ErrNotFound = errors.New("exercise not found")

// Exercise is a reusable exercise definition
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
}

// Input is used for both create and update; nil fields are left unset
type Input struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// New creates an exercise with validation
func New(in Input) (*Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return &Exercise{ID: uuid.New(), Title: in.Title, Description: in.Description}, nil
}

// Apply merges a partial update into e
func (e *Exercise) Apply(in Input) error {
	if err := in.validate(); err != nil {
		return err
	}
	if in.Title != nil {
		e.Title = in.Title
	}
	if in.Description != nil {
		e.Description = in.Description
	}
	return nil
}

func (in Input) validate() error {
	if err := checkLen("title", in.Title); err != nil {
		return err
	}
	return checkLen("description", in.Description)
}

// both fields are optional but, when present, must be 1..255 characters
func checkLen(field string, v *string) error {
	if v == nil {
		return nil
	}
	n := utf8.RuneCountInString(strings.TrimSpace(*v))
	if n == 0 || n > maxFieldLen {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be 1..%d characters", maxFieldLen)}
	}
	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

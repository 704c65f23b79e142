// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"strings"
)

// Sentinel error kinds shared across layers.
var (
	// ErrUnknownCategory marks a category key outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrNotFound is the expected outcome of a slug or id lookup with no match.
	ErrNotFound = errors.New("course not found")
	// ErrValidation marks an enrollment form that must not be submitted.
	ErrValidation = errors.New("validation error")
	// ErrNotifyTransport marks a failure of the notify capability.
	ErrNotifyTransport = errors.New("notify transport failed")
)

// FieldError names one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field of an enrollment form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

package usecase

import (
	"errors"

	"room-booking/pkg/utils"
)

var (
	// ErrNotFound is returned when a booking or room id is not in the store.
	// Usually the caller's copy of the collection is stale.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when the booking's current status does
	// not allow the requested change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSuggestionFailed hides any failure of the AI suggestion collaborator.
	ErrSuggestionFailed = errors.New("room suggestions unavailable")
)

// ValidationError carries field level messages callers can show next to inputs.
type ValidationError struct {
	FieldErrors map[string]string
}

func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + utils.FormatValidationErrors(v.FieldErrors)
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{FieldErrors: fields}
}

func fieldError(field, message string) *ValidationError {
	return newValidationError(map[string]string{field: message})
}

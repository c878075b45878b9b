package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")    // 400
	ErrConflict          = errors.New("conflict")            // 409
	ErrReferenceNotFound = errors.New("reference not found") // 404
)

// ErrorKind classifies a structured catalog error.
type ErrorKind string

const (
	KindValidationError        ErrorKind = "validation"
	KindConflictError          ErrorKind = "conflict"
	KindReferenceNotFoundError ErrorKind = "reference_not_found"
	// KindInternalError wraps unstructured storage failures for reporting.
	KindInternalError ErrorKind = "internal"
)

// Error is a structured, field-level failure reported to callers instead of
// being thrown across the storage boundary.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is match the sentinel for the kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindValidationError:
		return ErrValidation
	case KindConflictError:
		return ErrConflict
	case KindReferenceNotFoundError:
		return ErrReferenceNotFound
	default:
		return nil
	}
}

// Validation builds a ValidationError.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidationError, Field: field, Message: msg}
}

// Conflict builds a ConflictError.
func Conflict(field, msg string) *Error {
	return &Error{Kind: KindConflictError, Field: field, Message: msg}
}

// NotFound builds a ReferenceNotFoundError.
func NotFound(field, msg string) *Error {
	return &Error{Kind: KindReferenceNotFoundError, Field: field, Message: msg}
}

// Internal wraps an unstructured failure so it can be reported as a result.
func Internal(err error) *Error {
	return &Error{Kind: KindInternalError, Message: err.Error()}
}

// ToError returns err as a structured error, wrapping unstructured ones.
func ToError(err error) *Error {
	if ce, ok := AsError(err); ok {
		return ce
	}
	return Internal(err)
}

// AsError extracts a structured error from err, if it carries one.
func AsError(err error) (*Error, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return 400
	case errors.Is(err, ErrReferenceNotFound):
		return 404
	case errors.Is(err, ErrConflict):
		return 409
	default:
		return 500
	}
}

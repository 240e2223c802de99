package services

import (
	"fmt"
	"strings"
)

// ErrorKind classifies workflow rejections so the API layer can map them to
// HTTP statuses without string matching.
type ErrorKind string

const (
	ErrValidation        ErrorKind = "validation_failure"
	ErrPermissionDenied  ErrorKind = "permission_denied"
	ErrInvalidTransition ErrorKind = "invalid_transition"
	ErrNotFound          ErrorKind = "not_found"
	ErrConflict          ErrorKind = "conflict"
	ErrDependency        ErrorKind = "dependency_failure"
)

// WorkflowError is the structured rejection returned by the engine.
// Validation failures carry the complete violation list so the caller can
// present everything that needs fixing in one pass.
type WorkflowError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	Violations []string  `json:"violations,omitempty"`
	Err        error     `json:"-"`
}

func (e *WorkflowError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Violations, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *WorkflowError) Unwrap() error { return e.Err }

func validationError(violations []string) *WorkflowError {
	return &WorkflowError{
		Kind:       ErrValidation,
		Message:    "validation failed",
		Violations: violations,
	}
}

func permissionError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func transitionError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func dependencyError(msg string, err error) *WorkflowError {
	return &WorkflowError{Kind: ErrDependency, Message: msg, Err: err}
}

// AsWorkflowError returns err as a *WorkflowError, wrapping unknown errors
// as dependency failures so callers always get a classified rejection.
func AsWorkflowError(err error) *WorkflowError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WorkflowError); ok {
		return we
	}
	return dependencyError("internal error", err)
}

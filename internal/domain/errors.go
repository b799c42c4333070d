package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or incomplete caller input. It is always
// recoverable by correcting the input and is never retried automatically.
type ValidationError struct {
	Msg             string
	MissingCriteria []string
	InvalidValues   []string
}

func (e *ValidationError) Error() string {
	parts := []string{e.Msg}
	if len(e.MissingCriteria) > 0 {
		parts = append(parts, fmt.Sprintf("missing criteria: %s", strings.Join(e.MissingCriteria, ", ")))
	}
	if len(e.InvalidValues) > 0 {
		parts = append(parts, fmt.Sprintf("invalid values: %s", strings.Join(e.InvalidValues, ", ")))
	}
	return strings.Join(parts, "; ")
}

// NewValidationError builds a plain validation error with no field detail.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// NewNotFoundError builds a not-found error for the given entity reference.
func NewNotFoundError(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprintf("%v", id)}
}

// ConflictError reports a duplicate or already-processed operation, such as a
// second assessment submission for the same return.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// NewConflictError builds a conflict error.
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// ConsistencyError reports an atomic multi-write unit that failed and was
// rolled back. Partial state is never visible to the caller.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: transaction rolled back: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

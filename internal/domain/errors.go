package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core is, or wraps, one of these.
var (
	ErrRepository   = errors.New("repository failure")
	ErrPermission   = errors.New("permission denied")
	ErrValidation   = errors.New("invalid input")
	ErrAuthRequired = errors.New("authentication required")
)

// Domain errors.
var (
	ErrEventNotFound     = errors.New("event not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrNotOwner          = fmt.Errorf("%w: only the event creator can do this", ErrPermission)
	ErrNotManager        = fmt.Errorf("%w: only managers can create events", ErrPermission)
	ErrProfileIncomplete = fmt.Errorf("%w: complete your society profile first", ErrPermission)
	ErrEmptyComment      = fmt.Errorf("%w: comment text is empty", ErrValidation)
)

// RepositoryError wraps a store failure with the operation that hit it.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() []error {
	return []error{ErrRepository, e.Err}
}

// Repository wraps err as a RepositoryError unless it is nil or already a
// not-found error, which callers match on directly.
func Repository(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEventNotFound) || errors.Is(err, ErrProfileNotFound) {
		return err
	}
	return &RepositoryError{Op: op, Err: err}
}

// Validation builds a validation error carrying a field-level reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Code returns a stable identifier for err, used for message lookup and
// status mapping. The most specific match wins.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrProfileNotFound):
		return "profile_not_found"
	case errors.Is(err, ErrNotOwner):
		return "not_owner"
	case errors.Is(err, ErrNotManager):
		return "not_manager"
	case errors.Is(err, ErrProfileIncomplete):
		return "profile_incomplete"
	case errors.Is(err, ErrEmptyComment):
		return "empty_comment"
	case errors.Is(err, ErrPermission):
		return "permission_denied"
	case errors.Is(err, ErrValidation):
		return "invalid_input"
	case errors.Is(err, ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, ErrRepository):
		return "repository_failure"
	default:
		return "internal"
	}
}

package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of these;
// callers classify with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store error")
)

// Error carries a caller-facing message alongside its kind and an optional
// underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string, err error) error {
	return &Error{Kind: ErrConflict, Message: message, Err: err}
}

func Store(message string, err error) error {
	return &Error{Kind: ErrStore, Message: message, Err: err}
}

// Kind returns the sentinel err wraps, or nil for foreign errors.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrStore} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message is the text safe to hand back to a caller. Store failures never
// expose their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

package apperror

import (
	"errors"
	"fmt"

	cr "github.com/cockroachdb/errors"
)

// Kind is the stable machine-readable category of an error.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindValidation        Kind = "VALIDATION"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindInternal          Kind = "INTERNAL"
)

// Error is a domain error surfaced to callers as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

// ErrInvalidTransition marks every error returned by InvalidTransition.
var ErrInvalidTransition = New(KindInvalidTransition, "invalid status transition")

// InvalidTransition names both the current and the requested state.
func InvalidTransition(from, to string) error {
	return cr.Mark(New(KindInvalidTransition, fmt.Sprintf("cannot transition appointment from %s to %s", from, to)), ErrInvalidTransition)
}

// Wrap attaches a message and stack to an infrastructure error.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Is reports whether err matches target, including marks set by InvalidTransition.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// KindOf returns KindInternal for anything that is not a domain error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf never leaks the text of infrastructure errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// IsDomain reports whether err carries a domain kind.
func IsDomain(err error) bool {
	return KindOf(err) != KindInternal
}

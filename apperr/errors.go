// Package apperr defines the error kinds surfaced by the order and catalog
// services and how they map onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindStorage Kind = iota
	KindValidation
	KindNotFound
	KindInvalidStatus
	KindInvalidTransition
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidStatus:
		return "invalid_status"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindConflict:
		return "conflict"
	default:
		return "storage"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status is the HTTP status code the boundary should answer with.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidStatus, KindInvalidTransition:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found."}
}

func InvalidStatus(status string) *Error {
	return &Error{Kind: KindInvalidStatus, Message: fmt.Sprintf("Invalid status provided: %q.", status)}
}

func InvalidTransition(from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf("Cannot move order from %q to %q.", from, to)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps a driver error. The message is what callers see; err stays internal.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf reports the kind of err, treating unknown errors as storage failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

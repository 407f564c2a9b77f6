package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure. Every handler error funnels into one
// of these before it reaches the client; raw storage errors never leak.
type Kind int

const (
	Validation Kind = iota
	Auth
	Forbidden
	NotFound
	Conflict
	InvalidTransition
	Internal
)

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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation_error"
	case Auth:
		return "auth_error"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case InvalidTransition:
		return "invalid_transition"
	default:
		return "internal_error"
	}
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Auth:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict, InvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the taxonomy kind from any error chain. Unclassified
// errors count as Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

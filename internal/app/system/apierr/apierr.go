// Package apierr defines the error taxonomy surfaced by the JSON API and the
// admin screens: validation, unauthorized, not found, and internal.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies an Error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
)

// Error is a caller-safe error. Message is always fit to show to a client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrUnauthorized is returned when a protected operation has no valid session.
var ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}

// Validation builds a ValidationError with a specific message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError scoped to the entity name, e.g. "Initiative not found".
func NotFound(entity string) *Error {
	if entity == "" {
		entity = "Record"
	}
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Classify maps any error to a caller-safe *Error. A missing document becomes
// NotFound(entity); anything unrecognized becomes a generic internal error.
// The second return is true when err was an internal failure that should be
// logged by the caller.
func Classify(err error, entity string) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, e.Kind == KindInternal
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound(entity), false
	}
	return &Error{Kind: KindInternal, Message: "Internal server error"}, true
}

// Status returns the HTTP status code for a Kind.
func Status(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// IsNotFound reports whether err resolves to nothing (either an apierr
// NotFound or a driver ErrNoDocuments).
func IsNotFound(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindNotFound
	}
	return errors.Is(err, mongo.ErrNoDocuments)
}
